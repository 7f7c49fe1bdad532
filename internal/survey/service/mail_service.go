package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	surveymetrics "surveyor/internal/survey/metrics"
	"surveyor/internal/survey/models"
	"surveyor/internal/survey/store/mailqueue"
	dErrors "surveyor/pkg/domain-errors"
	"surveyor/pkg/platform/audit"
)

const resumeEmailSubject = "Your survey resume link"

// MailService accepts resume-email requests and holds them for an external
// sender. Enqueue is synchronous; the audit entry for it is explicitly
// backgrounded and never awaited.
type MailService struct {
	queue     mailqueue.Store
	fallback  mailqueue.Store // nil when queue is already the in-memory store
	publisher *audit.Publisher
	metrics   *surveymetrics.Metrics
	logger    *slog.Logger
	baseURL   string
	now       func() time.Time
	ids       func() string
}

// MailOption configures a MailService.
type MailOption func(*MailService)

// WithMailFallback arms an in-memory fallback for when the primary queue
// backend is unreachable.
func WithMailFallback(store mailqueue.Store) MailOption {
	return func(s *MailService) { s.fallback = store }
}

// WithMailAudit wires the audit publisher for email_queued events.
func WithMailAudit(publisher *audit.Publisher) MailOption {
	return func(s *MailService) { s.publisher = publisher }
}

// WithMailMetrics wires the survey module metrics.
func WithMailMetrics(m *surveymetrics.Metrics) MailOption {
	return func(s *MailService) { s.metrics = m }
}

// WithMailLogger sets the logger used to observe queue fallbacks.
func WithMailLogger(logger *slog.Logger) MailOption {
	return func(s *MailService) { s.logger = logger }
}

// WithMailClock overrides the time source. Test seam.
func WithMailClock(now func() time.Time) MailOption {
	return func(s *MailService) { s.now = now }
}

// WithMailIDs overrides queued-email ID generation. Test seam.
func WithMailIDs(ids func() string) MailOption {
	return func(s *MailService) { s.ids = ids }
}

// NewMailService constructs the mail queue service over the given primary
// backend. baseURL is the public origin resume links are built against.
func NewMailService(queue mailqueue.Store, baseURL string, opts ...MailOption) *MailService {
	s := &MailService{
		queue:   queue,
		logger:  slog.Default(),
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
		ids:     newMailID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newMailID() string {
	return "mail_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// QueueResumeEmail builds the resume email for the token and appends it to
// the queue, returning the queued ID immediately. The to address and token
// arrive already validated. The email_queued audit entry is emitted from a
// spawned goroutine; its failure is observed in logs but never reaches the
// caller, who already holds the ID.
func (s *MailService) QueueResumeEmail(ctx context.Context, to, token string) (string, error) {
	resumeURL := s.baseURL + "/survey?token=" + token
	email := models.QueuedEmail{
		ID:        s.ids(),
		To:        to,
		Subject:   resumeEmailSubject,
		Body:      "Resume your survey here: " + resumeURL,
		Token:     token,
		CreatedAt: s.now(),
	}

	if err := s.queue.Append(ctx, email); err != nil {
		if s.fallback == nil {
			return "", dErrors.Wrap(err, dErrors.CodeInternal, "queue resume email")
		}
		s.metrics.IncFallback("queue_email")
		s.logger.WarnContext(ctx, "mail queue unavailable, using fallback",
			"error", err,
		)
		if err := s.fallback.Append(ctx, email); err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeInternal, "queue resume email")
		}
	}
	s.metrics.IncEmailsQueued()

	if s.publisher != nil {
		auditCtx := context.WithoutCancel(ctx)
		go s.publisher.Emit(auditCtx, audit.Event{
			Action:   audit.ActionEmailQueued,
			Entity:   audit.EntitySurveyResponse,
			EntityID: token,
			Diff:     map[string]any{"to": to, "subject": email.Subject},
		})
	}

	return email.ID, nil
}

// ListQueuedEmails returns a snapshot of everything queued so far. Listing
// never consumes: delivery and removal belong to the external sender.
func (s *MailService) ListQueuedEmails(ctx context.Context) ([]models.QueuedEmail, error) {
	emails, err := s.queue.List(ctx)
	if err != nil {
		if s.fallback == nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list queued emails")
		}
		s.metrics.IncFallback("list_emails")
		s.logger.WarnContext(ctx, "mail queue unavailable, listing fallback",
			"error", err,
		)
		return s.fallback.List(ctx)
	}
	return emails, nil
}
