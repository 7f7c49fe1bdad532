package audit

import (
	"context"
	"log/slog"

	"surveyor/pkg/requestcontext"
)

// Publisher hands events to the background worker without ever blocking the
// caller. Audit is diagnostic, not authoritative: when the inbox is full the
// event is dropped and the drop is logged, which is the only acceptable
// failure mode on a request path.
type Publisher struct {
	inbox  chan<- Event
	logger *slog.Logger
}

func NewPublisher(inbox chan<- Event, logger *slog.Logger) *Publisher {
	return &Publisher{inbox: inbox, logger: logger}
}

// Emit stamps the event with request-scoped metadata and queues it. Never
// returns an error and never blocks.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.UserID == "" {
		event.UserID = requestcontext.UserID(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.UserAgent == "" {
		event.UserAgent = requestcontext.UserAgent(ctx)
	}

	select {
	case p.inbox <- event:
	default:
		p.logger.Warn("audit inbox full, dropping event",
			"action", event.Action,
			"entity_id", event.EntityID,
		)
	}
}
