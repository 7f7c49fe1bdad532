package response

import (
	"context"
	"sync"
	"time"

	"surveyor/internal/survey/models"
	"surveyor/pkg/platform/sentinel"
)

type memoryEntry struct {
	response models.Response
	answers  map[string]any
}

// InMemory is the fallback store: lifecycle-scoped, mutex-guarded, gone on
// restart. It keeps insertion order for listings the way the durable store
// keeps creation order.
type InMemory struct {
	mu      sync.RWMutex
	order   []string // response IDs in insertion order
	byID    map[string]*memoryEntry
	byToken map[string]string // token → response ID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:    make(map[string]*memoryEntry),
		byToken: make(map[string]string),
	}
}

func (s *InMemory) Create(_ context.Context, response *models.Response, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := &memoryEntry{
		response: *response,
		answers:  make(map[string]any, len(data)),
	}
	for questionID, value := range data {
		entry.answers[questionID] = value
	}
	s.byID[response.ID] = entry
	s.byToken[response.Token] = response.ID
	s.order = append(s.order, response.ID)
	return nil
}

func (s *InMemory) FindByToken(_ context.Context, token string) (*models.Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byToken[token]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	response := s.byID[id].response
	return &response, nil
}

func (s *InMemory) Answers(_ context.Context, responseID string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.byID[responseID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	answers := make(map[string]any, len(entry.answers))
	for questionID, value := range entry.answers {
		answers[questionID] = value
	}
	return answers, nil
}

func (s *InMemory) UpsertAnswers(_ context.Context, responseID string, patch map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.byID[responseID]
	if !ok {
		return sentinel.ErrNotFound
	}
	for questionID, value := range patch {
		entry.answers[questionID] = value
	}
	entry.response.UpdatedAt = time.Now()
	return nil
}

func (s *InMemory) Submit(_ context.Context, responseID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.byID[responseID]
	if !ok {
		return sentinel.ErrNotFound
	}
	entry.response.ApplySubmit(now)
	return nil
}

func (s *InMemory) ListAll(_ context.Context) ([]models.ResponseListing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listings := make([]models.ResponseListing, 0, len(s.order))
	for _, id := range s.order {
		entry := s.byID[id]
		data := make(map[string]any, len(entry.answers))
		for questionID, value := range entry.answers {
			data[questionID] = value
		}
		listings = append(listings, models.ResponseListing{
			ID:        entry.response.ID,
			CreatedAt: entry.response.CreatedAt,
			Data:      data,
		})
	}
	return listings, nil
}
