package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mind-engage/mindengage-seminar/internal/assessment"
	"github.com/mind-engage/mindengage-seminar/internal/metrics"
	"github.com/mind-engage/mindengage-seminar/internal/session"
)

const maxBodyBytes = 1 << 20

type assessmentRequest struct {
	Answers assessment.AnswerSet `json:"answers"`
}

type assessmentResponse struct {
	Result  *assessment.Result `json:"result"`
	Session *session.State     `json:"session"`
}

// SubmitAssessmentHandler scores a questionnaire submission and records the
// score in the caller's session.
func SubmitAssessmentHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asJSON := wantsJSON(r)
		st := session.FromContext(r.Context())

		answers, err := s.readAnswers(w, r)
		if err != nil {
			if asJSON {
				writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
				return
			}
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		res, err := s.Questionnaire.Assess(answers)
		if err != nil {
			var ve *assessment.ValidationError
			if !errors.As(err, &ve) {
				s.Log.WithError(err).Error("assess", nil)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			metrics.AssessmentsRejected.Inc()
			s.Log.Info("assessment rejected", map[string]interface{}{"problems": len(ve.Fields)})
			if asJSON {
				writeError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILURE", "please answer every question", ve.Fields)
				return
			}
			p := s.newPage(st)
			p.Answers = answers
			for _, f := range ve.Fields {
				p.FieldErrors[f.Field] = f.Message
			}
			p.AssessmentWarning = "Please answer every question before calculating your score."
			s.renderPage(w, http.StatusUnprocessableEntity, p)
			return
		}

		if st == nil {
			st = s.Sessions.New()
		}
		st.RecordScore(res.Score, res.Tier)
		if err := s.Sessions.Save(w, st); err != nil {
			s.Log.WithError(err).Error("save session", nil)
			http.Error(w, "could not save session", http.StatusInternalServerError)
			return
		}
		metrics.AssessmentsScored.WithLabelValues(metrics.ShortTier(res.Tier)).Inc()
		s.Log.Info("assessment scored", map[string]interface{}{
			"session": st.ID,
			"score":   res.Score,
			"tier":    metrics.ShortTier(res.Tier),
		})

		if asJSON {
			writeJSON(w, http.StatusOK, assessmentResponse{Result: &res, Session: st})
			return
		}
		p := s.newPage(st)
		p.Answers = answers
		s.renderPage(w, http.StatusOK, p)
	}
}

// readAnswers accepts either a JSON body {"answers": {...}} or a form post
// keyed by question id. Unknown form fields are ignored; unknown JSON keys are
// reported by validation.
func (s *Server) readAnswers(w http.ResponseWriter, r *http.Request) (assessment.AnswerSet, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if ct := r.Header.Get("Content-Type"); isJSONContent(ct) {
		var req assessmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, err
		}
		if req.Answers == nil {
			req.Answers = assessment.AnswerSet{}
		}
		return req.Answers, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	answers := assessment.AnswerSet{}
	for _, id := range s.Questionnaire.QuestionIDs() {
		if v := r.PostForm.Get(id); v != "" {
			answers[id] = v
		}
	}
	return answers, nil
}

// QuestionnaireHandler serves the questionnaire without option points.
func QuestionnaireHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := json.Marshal(s.Questionnaire)
		if err != nil {
			http.Error(w, "encode questionnaire", http.StatusInternalServerError)
			return
		}
		tag := etag(b)
		w.Header().Set("ETag", tag)
		w.Header().Set("Cache-Control", "public, max-age=300")
		if etagMatches(r, tag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(b)
	}
}

type sessionResponse struct {
	*session.State
	CertificateAllowed bool `json:"certificate_allowed"`
	MaxScore           int  `json:"max_score"`
}

func SessionHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := session.FromContext(r.Context())
		if st == nil {
			st = &session.State{}
		}
		writeJSON(w, http.StatusOK, sessionResponse{
			State:              st,
			CertificateAllowed: st.CertificateAllowed(),
			MaxScore:           s.Questionnaire.MaxScore(),
		})
	}
}
