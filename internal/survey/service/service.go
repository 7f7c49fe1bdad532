// Package service hosts the resume workflow: create a partial response and
// hand out a token, then load, patch, and submit through that token. Every
// operation runs the same two-path shape — attempt the durable store, capture
// failure, branch once into the in-process fallback — so callers never see a
// difference between a healthy and a degraded backend.
package service

import (
	"log/slog"
	"time"

	surveymetrics "surveyor/internal/survey/metrics"
	"surveyor/internal/survey/models"
	"surveyor/internal/survey/store/definition"
	"surveyor/internal/survey/store/response"
	"surveyor/internal/survey/token"
	"surveyor/pkg/platform/audit"
)

// SurveySpec pins the process to one survey definition. The registry creates
// the matching SurveyDefinition row on first use.
type SurveySpec struct {
	ID      string
	Version int
	Meta    map[string]any
}

// CreateResult is what a caller needs to resume later: the token. The
// internal ID is returned for the caller's own bookkeeping but is never a
// valid resume handle.
type CreateResult struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// ResponseView is the load shape: current status plus answers flattened into
// a questionID → value map.
type ResponseView struct {
	ID     string                `json:"id"`
	Status models.ResponseStatus `json:"status"`
	Data   map[string]any        `json:"data"`
}

type serviceConfig struct {
	durable     response.Store
	definitions definition.Store
	publisher   *audit.Publisher
	metrics     *surveymetrics.Metrics
	logger      *slog.Logger
	tokens      func() string
	now         func() time.Time
	spec        SurveySpec
}

// Option configures a service constructor.
type Option func(*serviceConfig)

// WithDurableStore arms the durable path. Without it every operation serves
// from the fallback store.
func WithDurableStore(store response.Store) Option {
	return func(c *serviceConfig) { c.durable = store }
}

// WithDefinitions wires the survey registry used to resolve the survey ID on
// the durable path.
func WithDefinitions(store definition.Store) Option {
	return func(c *serviceConfig) { c.definitions = store }
}

// WithAudit wires the audit publisher. Absent, mutations simply go unaudited.
func WithAudit(publisher *audit.Publisher) Option {
	return func(c *serviceConfig) { c.publisher = publisher }
}

// WithMetrics wires the survey module metrics.
func WithMetrics(m *surveymetrics.Metrics) Option {
	return func(c *serviceConfig) { c.metrics = m }
}

// WithLogger sets the logger used to observe fallback activations.
func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) { c.logger = logger }
}

// WithTokenGenerator overrides resume-token generation. Test seam.
func WithTokenGenerator(generate func() string) Option {
	return func(c *serviceConfig) { c.tokens = generate }
}

// WithClock overrides the time source. Test seam.
func WithClock(now func() time.Time) Option {
	return func(c *serviceConfig) { c.now = now }
}

// WithSpec sets the survey specification this process serves.
func WithSpec(spec SurveySpec) Option {
	return func(c *serviceConfig) { c.spec = spec }
}

func newConfig(opts []Option) *serviceConfig {
	cfg := &serviceConfig{
		tokens: token.New,
		now:    time.Now,
		logger: slog.Default(),
		spec:   SurveySpec{ID: "default-survey", Version: 1},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
