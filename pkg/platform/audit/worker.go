package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from the publisher's channel and persists
// them. Store failures are logged and swallowed so a sick audit backend never
// stalls the pipeline or the process.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.Warn("audit append failed",
					"action", event.Action,
					"entity_id", event.EntityID,
					"error", err,
				)
			}
		}
	}
}
