package mailqueue

import (
	"context"
	"sync"

	"surveyor/internal/survey/models"
)

// InMemory is the fallback queue. Not durable across restarts, which the
// resume-email contract explicitly tolerates.
type InMemory struct {
	mu     sync.RWMutex
	emails []models.QueuedEmail
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Append(_ context.Context, email models.QueuedEmail) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emails = append(s.emails, email)
	return nil
}

// List returns a defensive copy so callers can't mutate queued records.
func (s *InMemory) List(_ context.Context) ([]models.QueuedEmail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.QueuedEmail{}, s.emails...), nil
}
