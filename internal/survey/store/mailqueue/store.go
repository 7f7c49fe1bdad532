// Package mailqueue holds resume emails awaiting delivery by an external
// sender. The queue is append-only from this service's point of view: listing
// never consumes, and removal belongs to the sender.
package mailqueue

import (
	"context"

	"surveyor/internal/survey/models"
)

// Store is the queue contract shared by the Redis and in-memory backends.
type Store interface {
	Append(ctx context.Context, email models.QueuedEmail) error
	// List returns a snapshot of everything queued so far, oldest first.
	List(ctx context.Context) ([]models.QueuedEmail, error)
}
