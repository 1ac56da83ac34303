package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-api/internal/application"
	"github.com/oksasatya/marketplace-api/pkg/response"
)

type UploadHandler struct {
	Svc    *application.UploadService
	Logger *logrus.Logger
}

func NewUploadHandler(svc *application.UploadService, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{Svc: svc, Logger: logger}
}

// Upload POST /api/v1/upload, multipart field "file".
func (h *UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error[any](c, http.StatusRequestEntityTooLarge, "file too large", response.ErrorBody{Code: CodeInvalidInput})
			return
		}
		response.Error[any](c, http.StatusBadRequest, "invalid payload", response.ErrorBody{
			Code:    CodeInvalidInput,
			Details: map[string]string{"file": "is required"},
		})
		return
	}
	f, err := fh.Open()
	if err != nil {
		WriteError(c, h.Logger, application.Internal(err))
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.Upload(c.Request.Context(), IdentityFrom(c), fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"url": url}, "uploaded", nil)
}
