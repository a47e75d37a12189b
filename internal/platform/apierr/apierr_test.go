package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	base := errors.New("boom")
	e := New(http.StatusConflict, "already_finalized", base)
	if e.Error() != "boom" {
		t.Fatalf("Error(): %q", e.Error())
	}
	if !errors.Is(e, base) {
		t.Fatalf("expected Unwrap to expose base error")
	}
	if got := New(http.StatusNotFound, "attempt_not_found", nil).Error(); got != "attempt_not_found" {
		t.Fatalf("code fallback: %q", got)
	}
	if got := New(http.StatusTeapot, "", nil).Error(); got != "api error (418)" {
		t.Fatalf("status fallback: %q", got)
	}
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("finalize: %w", New(http.StatusForbidden, "forbidden", nil))
	ae, ok := As(wrapped)
	if !ok || ae.Status != http.StatusForbidden || ae.Code != "forbidden" {
		t.Fatalf("As: ok=%v ae=%+v", ok, ae)
	}
	if _, ok := As(errors.New("plain")); ok {
		t.Fatalf("As on plain error should fail")
	}
}
