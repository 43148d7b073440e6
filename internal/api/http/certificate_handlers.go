package http

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/mind-engage/mindengage-seminar/internal/certificate"
	"github.com/mind-engage/mindengage-seminar/internal/metrics"
	"github.com/mind-engage/mindengage-seminar/internal/session"
)

const (
	msgNameRequired = "Please enter your name to generate the certificate."
	msgNotScored    = "Please complete the LinkedIn Usage Self-Assessment first before generating your certificate."
)

type certificateRequest struct {
	Name string `json:"name"`
}

// CertificateHandler renders the completion certificate for a scored session.
func CertificateHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asJSON := wantsJSON(r)
		st := session.FromContext(r.Context())
		if st == nil {
			st = &session.State{}
		}

		name, err := readName(w, r)
		if err != nil {
			if asJSON {
				writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
				return
			}
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		fail := func(status int, code certificate.ErrorCode, msg string) {
			metrics.CertificatesFailed.WithLabelValues(string(code)).Inc()
			if asJSON {
				writeError(w, status, string(code), msg, nil)
				return
			}
			p := s.newPage(st)
			p.Name = name
			if status >= http.StatusInternalServerError {
				p.CertificateError = msg
			} else {
				p.CertificateWarning = msg
			}
			s.renderPage(w, status, p)
		}

		if strings.TrimSpace(name) == "" {
			fail(http.StatusUnprocessableEntity, certificate.CodeValidationFailure, msgNameRequired)
			return
		}
		if !st.CertificateAllowed() {
			fail(http.StatusConflict, certificate.CodeValidationFailure, msgNotScored)
			return
		}
		if s.Renderer == nil {
			fail(http.StatusInternalServerError, certificate.CodeRenderFailure, "certificate renderer is not configured")
			return
		}

		img, err := s.Renderer.Render(name)
		if err != nil {
			status, msg := certificateFailure(err)
			s.Log.WithError(err).Error("render certificate", map[string]interface{}{
				"session": st.ID,
				"code":    string(certificate.CodeOf(err)),
			})
			code := certificate.CodeOf(err)
			if code == "" {
				code = certificate.CodeRenderFailure
			}
			fail(status, code, msg)
			return
		}

		metrics.CertificatesRendered.Inc()
		s.Log.Info("certificate rendered", map[string]interface{}{"session": st.ID, "bytes": len(img)})

		tag := etag(img)
		h := w.Header()
		h.Set("Content-Type", certificate.ContentType)
		h.Set("Content-Length", strconv.Itoa(len(img)))
		h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
			"filename": certificate.DownloadFilename(name),
		}))
		h.Set("ETag", tag)
		h.Set("Cache-Control", "private, no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(img)
	}
}

func readName(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if isJSONContent(r.Header.Get("Content-Type")) {
		var req certificateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", err
		}
		return req.Name, nil
	}
	if err := r.ParseForm(); err != nil {
		return "", err
	}
	return r.PostForm.Get("name"), nil
}

// certificateFailure maps a renderer error to a status and a message a user
// can act on.
func certificateFailure(err error) (int, string) {
	var ce *certificate.Error
	switch {
	case errors.Is(err, certificate.ErrValidationFailure):
		return http.StatusUnprocessableEntity, msgNameRequired
	case errors.Is(err, certificate.ErrTemplateNotFound) && errors.As(err, &ce):
		return http.StatusInternalServerError,
			"Certificate template image not found at: " + ce.Path + ". Please make sure it's in the correct directory."
	default:
		return http.StatusInternalServerError, "An error occurred during image processing: " + err.Error()
	}
}
