package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/marketplace-api/internal/interface/http"
)

type UploadModule struct {
	Handler *handlers.UploadHandler
	Access  Access
}

func NewUploadModule(h *handlers.UploadHandler, access Access) *UploadModule {
	return &UploadModule{Handler: h, Access: access}
}

func (m *UploadModule) Register(rg *gin.RouterGroup) {
	rg.POST("/upload", m.Access.Required, userLimiter(), m.Handler.Upload)
}
