package audit_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyor/pkg/platform/audit"
	auditmemory "surveyor/pkg/platform/audit/store/memory"
	"surveyor/pkg/requestcontext"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublisherStampsRequestMetadata(t *testing.T) {
	inbox := make(chan audit.Event, 1)
	publisher := audit.NewPublisher(inbox, discardLogger())

	ctx := context.Background()
	ctx = requestcontext.WithUserID(ctx, "user_1")
	ctx = requestcontext.WithRequestID(ctx, "req_1")
	ctx = requestcontext.WithClientMetadata(ctx, "203.0.113.9", "Firefox 143 on Linux")
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ctx = requestcontext.WithTime(ctx, now)

	publisher.Emit(ctx, audit.Event{
		Action:   audit.ActionSubmit,
		Entity:   audit.EntitySurveyResponse,
		EntityID: "resp_1",
	})

	event := <-inbox
	assert.Equal(t, "user_1", event.UserID)
	assert.Equal(t, "req_1", event.RequestID)
	assert.Equal(t, "Firefox 143 on Linux", event.UserAgent)
	assert.Equal(t, now, event.Timestamp)
}

func TestPublisherDropsWhenInboxFull(t *testing.T) {
	inbox := make(chan audit.Event, 1)
	publisher := audit.NewPublisher(inbox, discardLogger())

	publisher.Emit(context.Background(), audit.Event{Action: audit.ActionSubmit, EntityID: "resp_1"})
	publisher.Emit(context.Background(), audit.Event{Action: audit.ActionSubmit, EntityID: "resp_2"})

	require.Len(t, inbox, 1)
	event := <-inbox
	assert.Equal(t, "resp_1", event.EntityID)
}

func TestWorkerPersistsEvents(t *testing.T) {
	inbox := make(chan audit.Event, 4)
	store := auditmemory.NewInMemoryStore()
	worker := audit.NewWorker(store, inbox, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	inbox <- audit.Event{Action: audit.ActionCreatePartial, EntityID: "resp_1"}
	inbox <- audit.Event{Action: audit.ActionSubmit, EntityID: "resp_1"}

	require.Eventually(t, func() bool {
		return len(store.Events()) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	events := store.Events()
	assert.Equal(t, audit.ActionCreatePartial, events[0].Action)
	assert.Equal(t, audit.ActionSubmit, events[1].Action)
}

type failingAuditStore struct{}

func (failingAuditStore) Append(context.Context, audit.Event) error {
	return errors.New("disk full")
}

func TestWorkerSwallowsStoreErrors(t *testing.T) {
	inbox := make(chan audit.Event, 4)
	worker := audit.NewWorker(failingAuditStore{}, inbox, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	inbox <- audit.Event{Action: audit.ActionSubmit, EntityID: "resp_1"}
	inbox <- audit.Event{Action: audit.ActionSubmit, EntityID: "resp_2"}

	require.Eventually(t, func() bool { return len(inbox) == 0 }, time.Second, 10*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestMultiFansOut(t *testing.T) {
	first := auditmemory.NewInMemoryStore()
	second := auditmemory.NewInMemoryStore()
	multi := audit.Multi{first, second}

	err := multi.Append(context.Background(), audit.Event{Action: audit.ActionSubmit, EntityID: "resp_1"})
	require.NoError(t, err)
	assert.Len(t, first.Events(), 1)
	assert.Len(t, second.Events(), 1)
}

func TestMultiJoinsErrors(t *testing.T) {
	healthy := auditmemory.NewInMemoryStore()
	multi := audit.Multi{failingAuditStore{}, healthy}

	err := multi.Append(context.Background(), audit.Event{Action: audit.ActionSubmit, EntityID: "resp_1"})
	assert.Error(t, err)
	assert.Len(t, healthy.Events(), 1)
}
