package http

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/mindengage-seminar/internal/storage"
)

// MountAssets exposes the blank certificate template for previews.
func MountAssets(r chi.Router, assets storage.AssetStore, templatePath string) {
	r.Get("/template", func(w http.ResponseWriter, r *http.Request) {
		rc, err := assets.Open(templatePath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				http.Error(w, "certificate template not found", http.StatusNotFound)
				return
			}
			http.Error(w, "open template: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer rc.Close()

		br := bufio.NewReader(rc)
		head, _ := br.Peek(512)
		w.Header().Set("Content-Type", http.DetectContentType(head))
		w.Header().Set("Cache-Control", "public, max-age=300")
		_, _ = io.Copy(w, br)
	})
}
