package quiz

import (
	"errors"
	"net/http"

	"github.com/yungbote/practice-backend/internal/platform/apierr"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrMismatch            = errors.New("question does not belong to the attempt's question set")
	ErrAlreadyFinalized    = errors.New("attempt already finalized")
	ErrAttemptCompleted    = errors.New("attempt is completed")
	ErrAttemptNotCompleted = errors.New("attempt is not completed")
)

func unauthorized() error {
	return apierr.New(http.StatusUnauthorized, "unauthorized", ErrUnauthorized)
}

func forbidden() error {
	return apierr.New(http.StatusForbidden, "forbidden", ErrForbidden)
}

func notFound(code string) error {
	return apierr.New(http.StatusNotFound, code, ErrNotFound)
}

func invalid(code string) error {
	return apierr.New(http.StatusBadRequest, code, ErrInvalidInput)
}

func internal(code string, err error) error {
	return apierr.New(http.StatusInternalServerError, code, err)
}
