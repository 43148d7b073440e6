package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/mind-engage/mindengage-seminar/internal/assessment"
	"github.com/mind-engage/mindengage-seminar/internal/session"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTmpl = template.Must(template.New("index.html.tmpl").Funcs(template.FuncMap{
	"checked": checkedOption,
}).ParseFS(templateFS, "templates/index.html.tmpl"))

type pageData struct {
	Questionnaire *assessment.Questionnaire
	MaxScore      int
	Answers       assessment.AnswerSet
	FieldErrors   map[string]string
	Session       *session.State
	Name          string

	AssessmentWarning  string
	CertificateWarning string
	CertificateError   string
}

// checkedOption preselects the submitted answer, or the first option when the
// question has not been answered yet.
func checkedOption(answers assessment.AnswerSet, qid, label string, idx int) bool {
	if v, ok := answers[qid]; ok && v != "" {
		return v == label
	}
	return idx == 0
}

func (s *Server) newPage(st *session.State) *pageData {
	if st == nil {
		st = &session.State{}
	}
	return &pageData{
		Questionnaire: s.Questionnaire,
		MaxScore:      s.Questionnaire.MaxScore(),
		Answers:       assessment.AnswerSet{},
		FieldErrors:   map[string]string{},
		Session:       st,
	}
}

func (s *Server) renderPage(w http.ResponseWriter, status int, p *pageData) {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, p); err != nil {
		s.Log.WithError(err).Error("render page", nil)
		http.Error(w, "render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// IndexHandler serves the questionnaire and certificate form.
func IndexHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderPage(w, http.StatusOK, s.newPage(session.FromContext(r.Context())))
	}
}
