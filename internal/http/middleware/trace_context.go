package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/practice-backend/internal/platform/ctxutil"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"

	maxCallerIDLen = 64
)

// AttachTraceContext gives every request a trace id and a request id and echoes
// both back. The trace id of the otelgin span wins over the X-Trace-Id header so
// log lines join up with exported traces. Caller-supplied ids that are not
// plain tokens are replaced.
func AttachTraceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())

		reqID := callerID(c.GetHeader(headerRequestID))
		if reqID == "" {
			reqID = uuid.New().String()
		}
		traceID := ""
		if sc := span.SpanContext(); sc.HasTraceID() {
			traceID = sc.TraceID().String()
		} else if traceID = callerID(c.GetHeader(headerTraceID)); traceID == "" {
			traceID = uuid.New().String()
		}

		span.SetAttributes(attribute.String("http.request_id", reqID))
		c.Request = c.Request.WithContext(ctxutil.WithTraceData(c.Request.Context(), &ctxutil.TraceData{
			TraceID:   traceID,
			RequestID: reqID,
		}))
		c.Writer.Header().Set(headerTraceID, traceID)
		c.Writer.Header().Set(headerRequestID, reqID)
		c.Next()
	}
}

// TraceIDs returns the ids AttachTraceContext stored on the request, or empty
// strings when it did not run.
func TraceIDs(c *gin.Context) (traceID, requestID string) {
	td := ctxutil.GetTraceData(c.Request.Context())
	if td == nil {
		return "", ""
	}
	return td.TraceID, td.RequestID
}

// callerID accepts up to maxCallerIDLen characters of [A-Za-z0-9._-] and
// returns "" for anything else.
func callerID(raw string) string {
	if raw == "" || len(raw) > maxCallerIDLen {
		return ""
	}
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return ""
		}
	}
	return raw
}
