package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-api/internal/application"
	"github.com/oksasatya/marketplace-api/pkg/response"
	"github.com/oksasatya/marketplace-api/pkg/validation"
)

const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeConflict     = "CONFLICT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL_ERROR"
)

// StatusFor maps an application error kind to an HTTP status and default error code.
func StatusFor(k application.Kind) (int, string) {
	switch k {
	case application.KindValidation:
		return http.StatusBadRequest, CodeInvalidInput
	case application.KindConflict:
		return http.StatusBadRequest, CodeConflict
	case application.KindUnauthenticated:
		return http.StatusUnauthorized, CodeUnauthorized
	case application.KindForbidden:
		return http.StatusForbidden, CodeForbidden
	case application.KindNotFound:
		return http.StatusNotFound, CodeNotFound
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// WriteError renders err as an error envelope. Internal causes are logged, never returned.
func WriteError(c *gin.Context, logger *logrus.Logger, err error) {
	ae := application.AsError(err)
	status, code := StatusFor(ae.Kind)
	if ae.Code != "" {
		code = ae.Code
	}
	msg := ae.Message
	if ae.Kind == application.KindInternal {
		msg = "internal server error"
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
			}).Error("request failed")
		}
	}
	response.Error[any](c, status, msg, response.ErrorBody{Code: code, Details: ae.Fields})
}

// bindError answers a body or query binding failure with per-field details.
func bindError(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", response.ErrorBody{
		Code:    CodeInvalidInput,
		Details: validation.ToDetails(err),
	})
}
