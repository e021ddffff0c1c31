// Package outbox publishes user sync events to Kafka so downstream
// consumers can follow the identity reconciliation stream.
package outbox

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"commune/internal/middleware"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// UserSynced is emitted after a user.created or user.updated event has been
// reconciled into the local users table.
type UserSynced struct {
	EventID  string    `json:"event_id"`
	ClerkID  string    `json:"clerk_id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	SyncedAt time.Time `json:"synced_at"`
}

// UserDeleted is emitted after a user row has been removed.
type UserDeleted struct {
	EventID   string    `json:"event_id"`
	ClerkID   string    `json:"clerk_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// Publisher writes sync events to a Kafka topic. A nil Publisher is valid
// and drops every event, so callers never need to branch on whether Kafka
// is configured.
type Publisher struct {
	writer *kafka.Writer
	topic  string
}

// NewPublisher creates a Publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return &Publisher{writer: w, topic: topic}
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// UserSynced publishes a UserSynced event keyed by clerk id. Publish
// failures are logged and counted, never surfaced: the reconciliation
// itself has already committed.
func (p *Publisher) UserSynced(ctx context.Context, clerkID, email, fullName string) {
	p.publish(ctx, "user.synced", clerkID, UserSynced{
		EventID:  uuid.NewString(),
		ClerkID:  clerkID,
		Email:    email,
		FullName: fullName,
		SyncedAt: time.Now().UTC(),
	})
}

// UserDeleted publishes a UserDeleted event keyed by clerk id.
func (p *Publisher) UserDeleted(ctx context.Context, clerkID string) {
	p.publish(ctx, "user.deleted", clerkID, UserDeleted{
		EventID:   uuid.NewString(),
		ClerkID:   clerkID,
		DeletedAt: time.Now().UTC(),
	})
}

func (p *Publisher) publish(ctx context.Context, eventType, key string, payload interface{}) {
	if p == nil || p.writer == nil {
		return
	}

	value, err := json.Marshal(payload)
	if err != nil {
		middleware.SyncEventsPublished.WithLabelValues(eventType, "error").Inc()
		return
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	}); err != nil {
		middleware.SyncEventsPublished.WithLabelValues(eventType, "error").Inc()
		middleware.Logger.WarnContext(ctx, "failed to publish sync event",
			slog.String("event_type", eventType),
			slog.String("clerk_id", key),
			slog.String("error", err.Error()),
		)
		return
	}
	middleware.SyncEventsPublished.WithLabelValues(eventType, "ok").Inc()
}
