package definition

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"surveyor/internal/survey/models"
)

// Postgres enforces the one-definition-per-(spec,version) invariant with a
// unique constraint. Ensure narrows, but does not contractually close, the
// concurrent-first-call race: ON CONFLICT DO NOTHING plus a re-select means a
// racing creator settles on whichever row won.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Ensure(ctx context.Context, def models.SurveyDefinition) (string, error) {
	const find = `SELECT id FROM survey_definitions WHERE spec_id = $1 AND version = $2`

	var id string
	err := s.db.QueryRowContext(ctx, find, def.SpecID, def.Version).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("find survey definition: %w", err)
	}

	meta, err := json.Marshal(def.Meta)
	if err != nil {
		return "", fmt.Errorf("encode survey meta: %w", err)
	}
	const insert = `
		INSERT INTO survey_definitions (id, spec_id, version, meta, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (spec_id, version) DO NOTHING
	`
	if _, err := s.db.ExecContext(ctx, insert, def.ID, def.SpecID, def.Version, meta, def.CreatedAt); err != nil {
		return "", fmt.Errorf("insert survey definition: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, find, def.SpecID, def.Version).Scan(&id); err != nil {
		return "", fmt.Errorf("reread survey definition: %w", err)
	}
	return id, nil
}
