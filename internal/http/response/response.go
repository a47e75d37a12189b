package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/practice-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError writes the error envelope and records the failure on c.Errors
// for the request log.
func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	_ = c.Error(apierr.New(status, code, err))
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAPIError answers with the status and code carried by an apierr.Error,
// or 500 with fallbackCode for anything else.
func RespondAPIError(c *gin.Context, err error, fallbackCode string) {
	if ae, ok := apierr.As(err); ok {
		RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	RespondError(c, http.StatusInternalServerError, fallbackCode, err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
