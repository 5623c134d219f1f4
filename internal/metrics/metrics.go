// Package metrics exposes Prometheus instrumentation for the upload workflow.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pdf_uploader"

// Recorder implements domain.WorkflowMetrics. A nil *Recorder records nothing.
type Recorder struct {
	rejections     *prometheus.CounterVec
	submissions    *prometheus.CounterVec
	uploadDuration *prometheus.HistogramVec
	activeSessions prometheus.Gauge
}

// New registers the workflow metrics on reg.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_rejections_total",
			Help:      "Candidate files rejected by PDF validation",
		}, []string{"source"}),

		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Submit actions by outcome",
		}, []string{"outcome"}),

		uploadDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_duration_seconds",
			Help:      "Time spent in the upload client",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of live upload sessions",
		}),
	}
}

func (r *Recorder) RecordRejection(source string) {
	if r == nil {
		return
	}
	r.rejections.WithLabelValues(source).Inc()
}

// RecordSubmission counts a submit action. Durations are only observed for
// submissions that reached the upload client.
func (r *Recorder) RecordSubmission(outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.submissions.WithLabelValues(outcome).Inc()
	if elapsed > 0 {
		r.uploadDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	}
}

func (r *Recorder) SetActiveSessions(n int) {
	if r == nil {
		return
	}
	r.activeSessions.Set(float64(n))
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
