package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the survey module. The fallback counter
// is the one to alert on: a nonzero rate means the durable store is being
// bypassed.
type Metrics struct {
	ResponsesCreated    prometheus.Counter
	ResponsesSubmitted  prometheus.Counter
	EmailsQueued        prometheus.Counter
	FallbackActivations *prometheus.CounterVec
	OperationDuration   *prometheus.HistogramVec
}

// New creates a Metrics instance with all survey module metrics registered.
func New() *Metrics {
	return &Metrics{
		ResponsesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "surveyor_responses_created_total",
			Help: "Total number of partial responses created",
		}),
		ResponsesSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "surveyor_responses_submitted_total",
			Help: "Total number of responses submitted",
		}),
		EmailsQueued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "surveyor_emails_queued_total",
			Help: "Total number of resume emails queued",
		}),
		FallbackActivations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "surveyor_fallback_activations_total",
			Help: "Times an operation fell back to the in-memory store",
		}, []string{"operation"}),
		OperationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "surveyor_operation_duration_seconds",
			Help:    "Duration of response store operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

// IncResponsesCreated records a successful partial-response creation.
func (m *Metrics) IncResponsesCreated() {
	if m == nil {
		return
	}
	m.ResponsesCreated.Inc()
}

// IncResponsesSubmitted records a successful submission.
func (m *Metrics) IncResponsesSubmitted() {
	if m == nil {
		return
	}
	m.ResponsesSubmitted.Inc()
}

// IncEmailsQueued records a queued resume email.
func (m *Metrics) IncEmailsQueued() {
	if m == nil {
		return
	}
	m.EmailsQueued.Inc()
}

// IncFallback records one durable-path failure handled by the fallback store.
func (m *Metrics) IncFallback(operation string) {
	if m == nil {
		return
	}
	m.FallbackActivations.WithLabelValues(operation).Inc()
}

// ObserveOperation records the duration of an operation. Call with the
// time.Now() captured at the start.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
