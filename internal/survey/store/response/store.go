// Package response persists survey responses and their answers. Two
// implementations share one contract: Postgres is the durable path, InMemory
// is the process-local fallback the service branches into when the durable
// path fails. Selection happens in the service, never here.
package response

import (
	"context"
	"time"

	"surveyor/internal/survey/models"
)

// Store is the persistence contract for responses. Each method is a single
// backend-side operation; callers get no multi-call transactions.
type Store interface {
	// Create persists a new partial response together with its initial
	// answer set.
	Create(ctx context.Context, response *models.Response, data map[string]any) error
	// FindByToken resolves the external handle. Returns sentinel.ErrNotFound
	// when no response carries the token.
	FindByToken(ctx context.Context, token string) (*models.Response, error)
	// Answers returns the questionID → value map for a response.
	Answers(ctx context.Context, responseID string) (map[string]any, error)
	// UpsertAnswers applies a key-wise merge: keys in patch overwrite, keys
	// absent stay untouched.
	UpsertAnswers(ctx context.Context, responseID string, patch map[string]any) error
	// Submit marks the response submitted and bumps updated_at. Writing
	// submitted onto an already-submitted response is a permitted no-op
	// transition.
	Submit(ctx context.Context, responseID string, now time.Time) error
	// ListAll returns every response with answers flattened. No pagination;
	// ordering follows backend iteration order.
	ListAll(ctx context.Context) ([]models.ResponseListing, error)
}
