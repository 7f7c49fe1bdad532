// Package audit captures who did what to which response. The trail is
// append-only and write-only from the domain's point of view: nothing in the
// resume flow ever reads it back, so a dropped entry degrades diagnostics,
// never correctness.
package audit

import (
	"context"
	"time"
)

// Action identifies the mutating operation an event records.
type Action string

const (
	ActionCreatePartial Action = "create_partial"
	ActionUpdatePartial Action = "update_partial"
	ActionSubmit        Action = "submit"
	ActionEmailQueued   Action = "email_queued"
)

// EntitySurveyResponse is the entity label for response lifecycle events.
const EntitySurveyResponse = "SurveyResponse"

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time
	UserID    string
	Action    Action
	Entity    string
	EntityID  string
	Diff      map[string]any
	RequestID string
	UserAgent string
}

// Store is an append-only sink for audit events. Implementations must treat
// Append as a single atomic write; the pipeline never batches.
type Store interface {
	Append(ctx context.Context, event Event) error
}
