package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mind-engage/mindengage-seminar/internal/assessment"
	"github.com/mind-engage/mindengage-seminar/internal/logger"
	"github.com/mind-engage/mindengage-seminar/internal/session"
	"github.com/mind-engage/mindengage-seminar/internal/storage"
)

// CertificateRenderer is the part of certificate.Renderer the handlers use.
type CertificateRenderer interface {
	Render(name string) ([]byte, error)
	TemplateAvailable() error
}

type Server struct {
	Questionnaire *assessment.Questionnaire
	Renderer      CertificateRenderer
	Sessions      *session.Manager
	Assets        storage.AssetStore
	TemplatePath  string
	Log           logger.Logger
	CORSOrigins   []string
	Timeout       time.Duration
}

func Routes(s *Server) http.Handler {
	if s.Log == nil {
		s.Log = logger.NewNoOpLogger()
	}
	if s.Questionnaire == nil {
		s.Questionnaire = assessment.Default()
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	origins := s.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, RequestLogger(s.Log), middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "If-None-Match"},
		ExposedHeaders:   []string{"Content-Disposition", "ETag"},
		AllowCredentials: !containsWildcard(origins),
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("ok")) })
	r.Get("/readyz", ReadyHandler(s))
	r.Handle("/metrics", promhttp.Handler())

	if s.Assets != nil && s.TemplatePath != "" {
		r.Route("/assets", func(r chi.Router) { MountAssets(r, s.Assets, s.TemplatePath) })
	}

	r.Group(func(r chi.Router) {
		r.Use(s.Sessions.Middleware)
		r.Get("/", IndexHandler(s))
		r.Post("/assessment", SubmitAssessmentHandler(s))
		r.Post("/certificate", CertificateHandler(s))
		r.Get("/api/questionnaire", QuestionnaireHandler(s))
		r.Get("/api/session", SessionHandler(s))
	})
	return r
}

// ReadyHandler reports 503 until the certificate template is reachable.
func ReadyHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Renderer == nil {
			http.Error(w, "renderer not configured", http.StatusServiceUnavailable)
			return
		}
		if err := s.Renderer.TemplateAvailable(); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ready"))
	}
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
