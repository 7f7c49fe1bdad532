// Package kafka publishes audit events to a Kafka topic for downstream
// consumers (SIEM, warehousing). Delivery is asynchronous and best-effort;
// produce failures surface only in logs.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	platformkafka "surveyor/internal/platform/kafka"
	audit "surveyor/pkg/platform/audit"
)

// payload is the JSON structure written to the topic. Timestamps are
// RFC3339Nano so consumers in any language can parse them.
type payload struct {
	Timestamp string         `json:"timestamp"`
	UserID    string         `json:"user_id,omitempty"`
	Action    string         `json:"action"`
	Entity    string         `json:"entity"`
	EntityID  string         `json:"entity_id"`
	Diff      map[string]any `json:"diff,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	UserAgent string         `json:"user_agent,omitempty"`
}

// Sink implements audit.Store over an async Kafka producer.
type Sink struct {
	producer *platformkafka.Producer
	topic    string
}

func NewSink(producer *platformkafka.Producer, topic string) *Sink {
	return &Sink{producer: producer, topic: topic}
}

// Append serializes the event and hands it to the producer. The produce
// itself is fire-and-forget; keying by entity ID keeps per-response ordering
// within a partition.
func (s *Sink) Append(ctx context.Context, event audit.Event) error {
	body, err := json.Marshal(payload{
		Timestamp: event.Timestamp.Format(time.RFC3339Nano),
		UserID:    event.UserID,
		Action:    string(event.Action),
		Entity:    event.Entity,
		EntityID:  event.EntityID,
		Diff:      event.Diff,
		RequestID: event.RequestID,
		UserAgent: event.UserAgent,
	})
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}
	s.producer.Produce(ctx, s.topic, []byte(event.EntityID), body)
	return nil
}
