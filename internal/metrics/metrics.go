package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssessmentsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seminar_assessments_scored_total",
			Help: "Total number of questionnaires scored, by tier",
		},
		[]string{"tier"},
	)

	AssessmentsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seminar_assessments_rejected_total",
			Help: "Total number of questionnaire submissions that failed validation",
		},
	)

	CertificatesRendered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seminar_certificates_rendered_total",
			Help: "Total number of certificates rendered",
		},
	)

	CertificatesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seminar_certificates_failed_total",
			Help: "Total number of certificate requests that failed",
		},
		[]string{"error_code"},
	)

	FontFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seminar_font_fallbacks_total",
			Help: "Font resolution steps that failed and fell through to the next source",
		},
		[]string{"source"},
	)

	RenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "seminar_certificate_render_duration_seconds",
			Help:    "Duration of certificate rendering in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// ShortTier reduces a tier label to a low-cardinality metric label.
func ShortTier(label string) string {
	for i, r := range label {
		if r == ':' || r == '/' {
			return label[:i]
		}
	}
	return label
}
