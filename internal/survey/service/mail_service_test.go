package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"surveyor/internal/survey/models"
	"surveyor/internal/survey/store/mailqueue"
	"surveyor/pkg/platform/audit"
)

type failingMailQueue struct{}

func (failingMailQueue) Append(context.Context, models.QueuedEmail) error {
	return errBackendDown
}
func (failingMailQueue) List(context.Context) ([]models.QueuedEmail, error) {
	return nil, errBackendDown
}

type MailServiceSuite struct {
	suite.Suite
	ctx   context.Context
	queue *mailqueue.InMemory
	inbox chan audit.Event
	svc   *MailService
}

func TestMailServiceSuite(t *testing.T) {
	suite.Run(t, new(MailServiceSuite))
}

func (s *MailServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.queue = mailqueue.NewInMemory()
	s.inbox = make(chan audit.Event, 16)
	s.svc = NewMailService(s.queue, "https://surveys.example.com",
		WithMailAudit(audit.NewPublisher(s.inbox, discardLogger())),
		WithMailLogger(discardLogger()),
	)
}

func (s *MailServiceSuite) TestQueueResumeEmail() {
	id, err := s.svc.QueueResumeEmail(s.ctx, "ada@example.com", "tok_abc_1")
	require.NoError(s.T(), err)
	assert.True(s.T(), len(id) > len("mail_"))
	assert.Equal(s.T(), "mail_", id[:5])

	emails, err := s.svc.ListQueuedEmails(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), emails, 1)
	assert.Equal(s.T(), id, emails[0].ID)
	assert.Equal(s.T(), "ada@example.com", emails[0].To)
	assert.Equal(s.T(), "Your survey resume link", emails[0].Subject)
	assert.Equal(s.T(), "Resume your survey here: https://surveys.example.com/survey?token=tok_abc_1", emails[0].Body)
	assert.Equal(s.T(), "tok_abc_1", emails[0].Token)
}

func (s *MailServiceSuite) TestQueueEmitsAuditEventually() {
	_, err := s.svc.QueueResumeEmail(s.ctx, "ada@example.com", "tok_abc_1")
	require.NoError(s.T(), err)

	// The audit entry is published from a spawned goroutine.
	select {
	case event := <-s.inbox:
		assert.Equal(s.T(), audit.ActionEmailQueued, event.Action)
		assert.Equal(s.T(), "tok_abc_1", event.EntityID)
		assert.Equal(s.T(), "ada@example.com", event.Diff["to"])
	case <-time.After(2 * time.Second):
		s.T().Fatal("no audit event published")
	}
}

func (s *MailServiceSuite) TestListingNeverConsumes() {
	_, err := s.svc.QueueResumeEmail(s.ctx, "ada@example.com", "tok_abc_1")
	require.NoError(s.T(), err)

	first, err := s.svc.ListQueuedEmails(s.ctx)
	require.NoError(s.T(), err)
	second, err := s.svc.ListQueuedEmails(s.ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), first, second)
}

func (s *MailServiceSuite) TestQueueFallsBackWhenPrimaryDown() {
	fallback := mailqueue.NewInMemory()
	svc := NewMailService(failingMailQueue{}, "https://surveys.example.com",
		WithMailFallback(fallback),
		WithMailLogger(discardLogger()),
	)

	id, err := svc.QueueResumeEmail(s.ctx, "ada@example.com", "tok_abc_1")
	require.NoError(s.T(), err)

	emails, err := svc.ListQueuedEmails(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), emails, 1)
	assert.Equal(s.T(), id, emails[0].ID)
}

func (s *MailServiceSuite) TestQueueErrorsWithoutFallback() {
	svc := NewMailService(failingMailQueue{}, "https://surveys.example.com",
		WithMailLogger(discardLogger()),
	)

	_, err := svc.QueueResumeEmail(s.ctx, "ada@example.com", "tok_abc_1")
	assert.Error(s.T(), err)
}

func (s *MailServiceSuite) TestBaseURLTrailingSlashTrimmed() {
	svc := NewMailService(s.queue, "https://surveys.example.com/",
		WithMailLogger(discardLogger()),
	)

	_, err := svc.QueueResumeEmail(s.ctx, "ada@example.com", "tok_abc_1")
	require.NoError(s.T(), err)

	emails, err := svc.ListQueuedEmails(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), emails, 1)
	assert.Contains(s.T(), emails[0].Body, "https://surveys.example.com/survey?token=tok_abc_1")
}
