package observability

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/yungbote/practice-backend"

// StartSpan opens a span named component.op on the global tracer.
func StartSpan(ctx context.Context, component, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, component+"."+op, trace.WithAttributes(attrs...))
}

// FinishSpan records *errp on span (when set) and ends it. Meant for defer.
func FinishSpan(span trace.Span, errp *error) {
	if span == nil {
		return
	}
	if errp != nil && *errp != nil {
		span.RecordError(*errp)
		span.SetStatus(codes.Error, (*errp).Error())
	}
	span.End()
}

func AttrUserID(id uuid.UUID) attribute.KeyValue {
	return attribute.String("user.id", id.String())
}

func AttrAttemptID(id uuid.UUID) attribute.KeyValue {
	return attribute.String("quiz.attempt_id", id.String())
}

func AttrQuestionSetID(id uuid.UUID) attribute.KeyValue {
	return attribute.String("quiz.question_set_id", id.String())
}

func AttrSkillID(id uuid.UUID) attribute.KeyValue {
	return attribute.String("proficiency.skill_id", id.String())
}
