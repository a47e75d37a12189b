package bus

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/practice-backend/internal/platform/logger"
)

func TestNoopBus(t *testing.T) {
	b := Noop()
	if err := b.Publish(context.Background(), Event{Type: EventQuizCompleted, UserID: uuid.New()}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestNewRedisBusRequiresClient(t *testing.T) {
	if _, err := NewRedisBus(logger.Nop(), nil, ""); err == nil {
		t.Fatalf("expected error for nil client")
	}
	if _, err := NewRedisBus(nil, nil, ""); err == nil {
		t.Fatalf("expected error for nil logger")
	}
}
