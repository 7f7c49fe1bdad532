package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"surveyor/internal/survey/models"
	"surveyor/pkg/platform/sentinel"
)

// Postgres is the durable response store, backed by a pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) Create(ctx context.Context, response *models.Response, data map[string]any) error {
	var owner *string
	if response.OwnerUserID != "" {
		owner = &response.OwnerUserID
	}

	query := `
		INSERT INTO survey_responses (id, survey_id, owner_user_id, token, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.pool.Exec(ctx, query,
		response.ID,
		response.SurveyID,
		owner,
		response.Token,
		string(response.Status),
		response.CreatedAt,
		response.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert response: %w", err)
	}
	return s.UpsertAnswers(ctx, response.ID, data)
}

func (s *Postgres) FindByToken(ctx context.Context, token string) (*models.Response, error) {
	query := `
		SELECT id, survey_id, owner_user_id, status, created_at, updated_at
		FROM survey_responses
		WHERE token = $1
	`
	var (
		response models.Response
		owner    *string
		status   string
	)
	err := s.pool.QueryRow(ctx, query, token).Scan(
		&response.ID,
		&response.SurveyID,
		&owner,
		&status,
		&response.CreatedAt,
		&response.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find response by token: %w", err)
	}
	response.Token = token
	response.Status = models.ResponseStatus(status)
	if owner != nil {
		response.OwnerUserID = *owner
	}
	return &response, nil
}

func (s *Postgres) Answers(ctx context.Context, responseID string) (map[string]any, error) {
	query := `SELECT question_id, value FROM survey_answers WHERE response_id = $1`
	rows, err := s.pool.Query(ctx, query, responseID)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	answers := make(map[string]any)
	for rows.Next() {
		var (
			questionID string
			raw        []byte
		)
		if err := rows.Scan(&questionID, &raw); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, fmt.Errorf("decode answer value: %w", err)
		}
		answers[questionID] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answers: %w", err)
	}
	return answers, nil
}

// UpsertAnswers writes each pair independently. A concurrent patch against the
// same response interleaves per answer, last write wins per key; that race is
// documented and accepted, not serialized here.
func (s *Postgres) UpsertAnswers(ctx context.Context, responseID string, patch map[string]any) error {
	query := `
		INSERT INTO survey_answers (response_id, question_id, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (response_id, question_id) DO UPDATE SET value = EXCLUDED.value
	`
	for questionID, value := range patch {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode answer value: %w", err)
		}
		if _, err := s.pool.Exec(ctx, query, responseID, questionID, raw); err != nil {
			return fmt.Errorf("upsert answer %s: %w", questionID, err)
		}
	}
	return nil
}

func (s *Postgres) Submit(ctx context.Context, responseID string, now time.Time) error {
	query := `UPDATE survey_responses SET status = $2, updated_at = $3 WHERE id = $1`
	tag, err := s.pool.Exec(ctx, query, responseID, string(models.StatusSubmitted), now)
	if err != nil {
		return fmt.Errorf("submit response: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) ListAll(ctx context.Context) ([]models.ResponseListing, error) {
	query := `
		SELECT r.id, r.created_at, a.question_id, a.value
		FROM survey_responses r
		LEFT JOIN survey_answers a ON a.response_id = r.id
		ORDER BY r.created_at, r.id
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer rows.Close()

	var (
		listings []models.ResponseListing
		index    = make(map[string]int)
	)
	for rows.Next() {
		var (
			id         string
			createdAt  time.Time
			questionID *string
			raw        []byte
		)
		if err := rows.Scan(&id, &createdAt, &questionID, &raw); err != nil {
			return nil, fmt.Errorf("scan response row: %w", err)
		}
		pos, ok := index[id]
		if !ok {
			pos = len(listings)
			index[id] = pos
			listings = append(listings, models.ResponseListing{
				ID:        id,
				CreatedAt: createdAt,
				Data:      make(map[string]any),
			})
		}
		if questionID != nil {
			var value any
			if err := json.Unmarshal(raw, &value); err != nil {
				return nil, fmt.Errorf("decode answer value: %w", err)
			}
			listings[pos].Data[*questionID] = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate responses: %w", err)
	}
	return listings, nil
}
