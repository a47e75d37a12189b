package observability

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestFinishSpanRecordsError(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	func() (err error) {
		_, span := StartSpan(context.Background(), "quiz", "finalize")
		defer FinishSpan(span, &err)
		return errors.New("boom")
	}()
	func() (err error) {
		_, span := StartSpan(context.Background(), "quiz", "record_answer")
		defer FinishSpan(span, &err)
		return nil
	}()

	ended := rec.Ended()
	if len(ended) != 2 {
		t.Fatalf("ended spans: got %d want 2", len(ended))
	}
	if ended[0].Name() != "quiz.finalize" || ended[0].Status().Code != codes.Error {
		t.Fatalf("first span: name=%s status=%v", ended[0].Name(), ended[0].Status())
	}
	if ended[1].Status().Code == codes.Error {
		t.Fatalf("second span should not be an error")
	}
}

func TestInitOTelDisabledReturnsNoopShutdown(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "false")
	shutdown := InitOTel(context.Background(), nil, OtelConfig{ServiceName: "test"})
	if shutdown == nil {
		t.Fatalf("expected non-nil shutdown")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestOtelHeaders(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "a=1, bad ,b = 2,c=")
	h := otelHeaders()
	if len(h) != 2 || h["a"] != "1" || h["b"] != "2" {
		t.Fatalf("headers: %v", h)
	}
}
