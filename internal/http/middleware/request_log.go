package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/practice-backend/internal/platform/apierr"
	"github.com/yungbote/practice-backend/internal/platform/ctxutil"
	"github.com/yungbote/practice-backend/internal/platform/logger"
)

// routeIDParams names the ":id" param of each resource route in the log line.
var routeIDParams = map[string]string{
	"/api/attempts/":      "attempt_id",
	"/api/question-sets/": "question_set_id",
}

// RequestLogger logs one line per request: route template, ids of the resource
// touched, caller, and the apierr code of the failure when there was one. 5xx
// lines also carry the error message.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"route", route,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if traceID, reqID := TraceIDs(c); traceID != "" {
			fields = append(fields, "trace_id", traceID, "request_id", reqID)
		}
		fields = append(fields, resourceFields(c, route)...)
		if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil && rd.UserID != uuid.Nil {
			fields = append(fields, "user_id", rd.UserID.String())
		}
		if last := c.Errors.Last(); last != nil {
			if ae, ok := apierr.As(last.Err); ok && ae.Code != "" {
				fields = append(fields, "error_code", ae.Code)
			}
			if status >= 500 {
				fields = append(fields, "error", last.Error())
			}
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}

func resourceFields(c *gin.Context, route string) []interface{} {
	if set := c.Param("set"); set != "" {
		return []interface{}{"question_set_slug", set}
	}
	id := c.Param("id")
	if id == "" {
		return nil
	}
	for prefix, key := range routeIDParams {
		if strings.HasPrefix(route, prefix) {
			return []interface{}{key, id}
		}
	}
	return []interface{}{"resource_id", id}
}
