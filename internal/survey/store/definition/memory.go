package definition

import (
	"context"
	"sync"

	"surveyor/internal/survey/models"
)

type specKey struct {
	specID  string
	version int
}

// InMemory keeps definitions in a process-local map. Used in tests and as the
// durable stand-in when no database is configured.
type InMemory struct {
	mu          sync.Mutex
	definitions map[specKey]models.SurveyDefinition
}

func NewInMemory() *InMemory {
	return &InMemory{definitions: make(map[specKey]models.SurveyDefinition)}
}

func (s *InMemory) Ensure(_ context.Context, def models.SurveyDefinition) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := specKey{specID: def.SpecID, version: def.Version}
	if existing, ok := s.definitions[key]; ok {
		return existing.ID, nil
	}
	s.definitions[key] = def
	return def.ID, nil
}

// Len reports how many definitions exist. Test helper for the uniqueness
// invariant.
func (s *InMemory) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.definitions)
}
