package response

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"surveyor/internal/survey/models"
	"surveyor/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *InMemory
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewInMemory()
}

func (s *InMemoryStoreSuite) seed(id, token string, data map[string]any) *models.Response {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	resp := &models.Response{
		ID:        id,
		SurveyID:  models.FallbackSurveyID,
		Token:     token,
		Status:    models.StatusPartial,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(s.T(), s.store.Create(s.ctx, resp, data))
	return resp
}

func (s *InMemoryStoreSuite) TestCreateAndFindByToken() {
	s.seed("resp_1", "tok_a", map[string]any{"role": "Engineer"})

	found, err := s.store.FindByToken(s.ctx, "tok_a")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "resp_1", found.ID)
	assert.Equal(s.T(), models.StatusPartial, found.Status)

	_, err = s.store.FindByToken(s.ctx, "tok_missing")
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestAnswersReturnsCopy() {
	s.seed("resp_1", "tok_a", map[string]any{"role": "Engineer"})

	answers, err := s.store.Answers(s.ctx, "resp_1")
	require.NoError(s.T(), err)
	answers["role"] = "tampered"

	fresh, err := s.store.Answers(s.ctx, "resp_1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Engineer", fresh["role"])
}

func (s *InMemoryStoreSuite) TestUpsertAnswersMerges() {
	s.seed("resp_1", "tok_a", map[string]any{"role": "Engineer"})

	require.NoError(s.T(), s.store.UpsertAnswers(s.ctx, "resp_1", map[string]any{
		"role": "Manager",
		"team": "Infra",
	}))

	answers, err := s.store.Answers(s.ctx, "resp_1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), map[string]any{"role": "Manager", "team": "Infra"}, answers)

	err = s.store.UpsertAnswers(s.ctx, "resp_missing", map[string]any{"role": "x"})
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestSubmit() {
	s.seed("resp_1", "tok_a", nil)

	submitted := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(s.T(), s.store.Submit(s.ctx, "resp_1", submitted))

	found, err := s.store.FindByToken(s.ctx, "tok_a")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.StatusSubmitted, found.Status)
	assert.Equal(s.T(), submitted, found.UpdatedAt)

	err = s.store.Submit(s.ctx, "resp_missing", submitted)
	assert.ErrorIs(s.T(), err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestListAllInsertionOrder() {
	s.seed("resp_1", "tok_a", map[string]any{"n": 1})
	s.seed("resp_2", "tok_b", map[string]any{"n": 2})
	s.seed("resp_3", "tok_c", map[string]any{"n": 3})

	listings, err := s.store.ListAll(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), listings, 3)
	assert.Equal(s.T(), "resp_1", listings[0].ID)
	assert.Equal(s.T(), "resp_2", listings[1].ID)
	assert.Equal(s.T(), "resp_3", listings[2].ID)
}
