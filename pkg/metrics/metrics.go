// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// SessionsActive tracks the number of live user sessions in the store.
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sessions_active",
			Help: "Number of live user sessions",
		},
	)

	// SessionEvictionsTotal tracks sessions evicted under capacity pressure.
	SessionEvictionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_evictions_total",
			Help: "Total sessions evicted at capacity",
		},
	)

	// DraftFieldUpdatesTotal tracks draft field updates by field and outcome.
	DraftFieldUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draft_field_updates_total",
			Help: "Total draft field update attempts",
		},
		[]string{"field", "outcome"},
	)

	// NotesAppendedTotal tracks research notes appended to drafts.
	NotesAppendedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "draft_notes_appended_total",
			Help: "Total research notes appended to drafts",
		},
	)

	// ContactsSavedTotal tracks drafts committed to the contact store.
	ContactsSavedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contacts_saved_total",
			Help: "Total contacts saved from drafts",
		},
	)

	// ContactEventsPublished tracks saved-contact events published to the
	// stream, by outcome.
	ContactEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_events_published_total",
			Help: "Total contact events published to JetStream",
		},
		[]string{"outcome"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// SetSessionsActive sets the live session gauge.
func SetSessionsActive(n int) {
	SessionsActive.Set(float64(n))
}

// IncrementSessionEvictions increments the eviction counter.
func IncrementSessionEvictions() {
	SessionEvictionsTotal.Inc()
}

// RecordFieldUpdate records a draft field update attempt.
func RecordFieldUpdate(field string, accepted bool) {
	outcome := "rejected"
	if accepted {
		outcome = "accepted"
	}
	DraftFieldUpdatesTotal.WithLabelValues(field, outcome).Inc()
}

// RecordContactSaved records a successful draft commit.
func RecordContactSaved() {
	ContactsSavedTotal.Inc()
}

// RecordEventPublish records a stream publish attempt.
func RecordEventPublish(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	ContactEventsPublished.WithLabelValues(outcome).Inc()
}
