package mailqueue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"surveyor/internal/survey/models"
)

// Redis stores the queue as a list of JSON documents. RPUSH preserves queue
// order; LRANGE gives the snapshot semantics List requires without consuming
// anything.
type Redis struct {
	client redis.Cmdable
	key    string
}

func NewRedis(client redis.Cmdable, key string) *Redis {
	return &Redis{client: client, key: key}
}

func (s *Redis) Append(ctx context.Context, email models.QueuedEmail) error {
	body, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("encode queued email: %w", err)
	}
	if err := s.client.RPush(ctx, s.key, body).Err(); err != nil {
		return fmt.Errorf("rpush queued email: %w", err)
	}
	return nil
}

func (s *Redis) List(ctx context.Context) ([]models.QueuedEmail, error) {
	raw, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange mail queue: %w", err)
	}
	emails := make([]models.QueuedEmail, 0, len(raw))
	for _, item := range raw {
		var email models.QueuedEmail
		if err := json.Unmarshal([]byte(item), &email); err != nil {
			return nil, fmt.Errorf("decode queued email: %w", err)
		}
		emails = append(emails, email)
	}
	return emails, nil
}
