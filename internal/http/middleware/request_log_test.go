package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yungbote/practice-backend/internal/http/response"
	"github.com/yungbote/practice-backend/internal/platform/logger"
)

func observedEngine(t *testing.T) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(AttachTraceContext())
	r.Use(RequestLogger(&logger.Logger{SugaredLogger: zap.New(core).Sugar()}))
	r.POST("/api/attempts/:id/finalize", func(c *gin.Context) {
		response.RespondError(c, http.StatusConflict, "already_finalized", nil)
	})
	r.GET("/api/question-sets/:id/attempts", func(c *gin.Context) {
		response.RespondOK(c, gin.H{})
	})
	r.GET("/api/courses/:course/question-sets/:set", func(c *gin.Context) {
		response.RespondError(c, http.StatusInternalServerError, "load_question_set_failed", errors.New("boom"))
	})
	return r, logs
}

func onlyEntry(t *testing.T, logs *observer.ObservedLogs) (zapcore.Level, map[string]interface{}) {
	t.Helper()
	entries := logs.TakeAll()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log line, got %d", len(entries))
	}
	return entries[0].Level, entries[0].ContextMap()
}

func TestRequestLoggerNamesAttemptAndErrorCode(t *testing.T) {
	r, logs := observedEngine(t)
	id := uuid.New().String()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/attempts/"+id+"/finalize", nil))
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d", w.Code)
	}

	level, fields := onlyEntry(t, logs)
	if level != zapcore.WarnLevel {
		t.Fatalf("level = %v", level)
	}
	if fields["route"] != "/api/attempts/:id/finalize" {
		t.Fatalf("route = %v", fields["route"])
	}
	if fields["attempt_id"] != id {
		t.Fatalf("attempt_id = %v", fields["attempt_id"])
	}
	if fields["error_code"] != "already_finalized" {
		t.Fatalf("error_code = %v", fields["error_code"])
	}
	if _, ok := fields["error"]; ok {
		t.Fatalf("4xx lines should not carry the error message")
	}
	if fields["request_id"] != w.Header().Get(headerRequestID) {
		t.Fatalf("request_id %v does not match response header", fields["request_id"])
	}
}

func TestRequestLoggerNamesQuestionSet(t *testing.T) {
	r, logs := observedEngine(t)
	id := uuid.New().String()

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/question-sets/"+id+"/attempts", nil))
	level, fields := onlyEntry(t, logs)
	if level != zapcore.InfoLevel {
		t.Fatalf("level = %v", level)
	}
	if fields["question_set_id"] != id {
		t.Fatalf("question_set_id = %v", fields["question_set_id"])
	}
	if _, ok := fields["error_code"]; ok {
		t.Fatalf("success should not carry an error code")
	}

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/courses/bio/question-sets/cells-1", nil))
	level, fields = onlyEntry(t, logs)
	if level != zapcore.ErrorLevel {
		t.Fatalf("level = %v", level)
	}
	if fields["question_set_slug"] != "cells-1" || fields["error"] != "boom" || fields["error_code"] != "load_question_set_failed" {
		t.Fatalf("unexpected fields: %v", fields)
	}

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	_, fields = onlyEntry(t, logs)
	if fields["route"] != "unmatched" {
		t.Fatalf("route = %v", fields["route"])
	}
}

func TestAttachTraceContextCallerIDs(t *testing.T) {
	r, _ := observedEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	req.Header.Set(headerRequestID, "req-42")
	req.Header.Set(headerTraceID, "trace.abc_1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(headerRequestID); got != "req-42" {
		t.Fatalf("request id = %q", got)
	}
	if got := w.Header().Get(headerTraceID); got != "trace.abc_1" {
		t.Fatalf("trace id = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	req.Header.Set(headerRequestID, "bad id\nforged=1")
	req.Header.Set(headerTraceID, strings.Repeat("a", maxCallerIDLen+1))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if _, err := uuid.Parse(w.Header().Get(headerRequestID)); err != nil {
		t.Fatalf("unsafe request id should be replaced, got %q", w.Header().Get(headerRequestID))
	}
	if _, err := uuid.Parse(w.Header().Get(headerTraceID)); err != nil {
		t.Fatalf("oversized trace id should be replaced, got %q", w.Header().Get(headerTraceID))
	}
}
