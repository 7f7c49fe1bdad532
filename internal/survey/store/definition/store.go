// Package definition is the survey registry: it guarantees at most one
// SurveyDefinition per (spec id, version) and hands back its identifier,
// creating it on first use.
package definition

import (
	"context"

	"surveyor/internal/survey/models"
)

// Store finds or creates survey definitions.
type Store interface {
	// Ensure returns the ID of the definition matching def's SpecID and
	// Version, creating the row on first use. Idempotency under concurrent
	// first calls is best-effort; two racing creators may both insert, in
	// which case the uniqueness constraint keeps one and Ensure re-reads.
	Ensure(ctx context.Context, def models.SurveyDefinition) (string, error)
}
