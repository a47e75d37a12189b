package bus

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const EventQuizCompleted = "quiz.completed"

// Event is a fire-and-forget notification for downstream consumers.
type Event struct {
	Type       string         `json:"type"`
	UserID     uuid.UUID      `json:"user_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}

type Bus interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

type noopBus struct{}

// Noop drops every event.
func Noop() Bus { return noopBus{} }

func (noopBus) Publish(context.Context, Event) error { return nil }
func (noopBus) Close() error { return nil }
