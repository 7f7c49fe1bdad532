package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	audit "surveyor/pkg/platform/audit"
)

// Store persists audit events to the audit_events table via database/sql.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Append writes a single audit event. One insert per event; there is no
// batching and no transaction spanning the domain write and the audit write,
// so a crash in between leaves an accepted audit gap.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	var diff []byte
	if event.Diff != nil {
		b, err := json.Marshal(event.Diff)
		if err != nil {
			return fmt.Errorf("marshal audit diff: %w", err)
		}
		diff = b
	}

	var userID *string
	if event.UserID != "" {
		userID = &event.UserID
	}

	query := `
		INSERT INTO audit_events (id, timestamp, user_id, action, entity, entity_id, diff, request_id, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.NewString(),
		event.Timestamp,
		userID,
		string(event.Action),
		event.Entity,
		event.EntityID,
		diff,
		event.RequestID,
		event.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
