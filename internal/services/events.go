package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/syncify/internal/logger"
	"github.com/sbilibin2017/syncify/internal/models"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// EventPublisher publishes domain events to Kafka. Publishing is best effort:
// failures are logged and never returned to the caller. A nil publisher or a
// nil writer disables publishing.
type EventPublisher struct {
	writer KafkaWriter
	now    func() time.Time
}

// NewEventPublisher creates a new EventPublisher.
func NewEventPublisher(writer KafkaWriter) *EventPublisher {
	return &EventPublisher{writer: writer, now: time.Now}
}

// Publish sends an event of eventType about userID. subjectID may be uuid.Nil.
func (p *EventPublisher) Publish(ctx context.Context, eventType string, userID, subjectID uuid.UUID) {
	if p == nil || p.writer == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "type", eventType, "user_id", userID)
		return
	}

	event := models.Event{
		EventID:   uuid.NewString(),
		Type:      eventType,
		UserID:    userID.String(),
		Timestamp: p.now().Unix(),
	}
	if subjectID != uuid.Nil {
		event.SubjectID = subjectID.String()
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(eventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish event to Kafka", "event_id", event.EventID, "type", eventType, "error", err)
	} else {
		logger.Log.Infow("Event published to Kafka", "event_id", event.EventID, "type", eventType)
	}
}

// Close closes the underlying writer.
func (p *EventPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
