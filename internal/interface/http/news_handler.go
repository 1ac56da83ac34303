package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-api/internal/application"
	"github.com/oksasatya/marketplace-api/pkg/response"
)

type NewsHandler struct {
	Svc    *application.NewsService
	Logger *logrus.Logger
}

func NewNewsHandler(svc *application.NewsService, logger *logrus.Logger) *NewsHandler {
	return &NewsHandler{Svc: svc, Logger: logger}
}

type upsertNewsRequest struct {
	TitleEn     string     `json:"titleEn" binding:"required,notblank"`
	TitleVi     string     `json:"titleVi" binding:"required,notblank"`
	CoverURL    *string    `json:"coverURL"`
	Location    *string    `json:"location"`
	BodyEn      *string    `json:"bodyEn"`
	BodyVi      *string    `json:"bodyVi"`
	EventDate   *time.Time `json:"eventDate"`
	IsPublished bool       `json:"isPublished"`
}

// updateNewsRequest carries the same fields without binding rules so a
// missing item reports not found before its titles are checked.
type updateNewsRequest struct {
	TitleEn     string     `json:"titleEn"`
	TitleVi     string     `json:"titleVi"`
	CoverURL    *string    `json:"coverURL"`
	Location    *string    `json:"location"`
	BodyEn      *string    `json:"bodyEn"`
	BodyVi      *string    `json:"bodyVi"`
	EventDate   *time.Time `json:"eventDate"`
	IsPublished bool       `json:"isPublished"`
}

func (r upsertNewsRequest) input() application.NewsInput {
	return application.NewsInput{
		TitleEn: r.TitleEn, TitleVi: r.TitleVi, CoverURL: r.CoverURL, Location: r.Location,
		BodyEn: r.BodyEn, BodyVi: r.BodyVi, EventDate: r.EventDate, IsPublished: r.IsPublished,
	}
}

func (h *NewsHandler) ListPublished(c *gin.Context) {
	items, err := h.Svc.ListPublished(c.Request.Context())
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toNewsDTOs(items), "news", nil)
}

func (h *NewsHandler) GetPublished(c *gin.Context) {
	n, err := h.Svc.GetPublished(c.Request.Context(), c.Param("id"))
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toNewsDTO(*n), "news item", nil)
}

func (h *NewsHandler) ListAll(c *gin.Context) {
	items, err := h.Svc.ListAll(c.Request.Context(), IdentityFrom(c))
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toNewsDTOs(items), "news", nil)
}

func (h *NewsHandler) Create(c *gin.Context) {
	var req upsertNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	n, err := h.Svc.Create(c.Request.Context(), IdentityFrom(c), req.input())
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toNewsDTO(*n), "news item created", nil)
}

// Update replaces every editable field, mirroring create.
func (h *NewsHandler) Update(c *gin.Context) {
	var req updateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	n, err := h.Svc.Update(c.Request.Context(), IdentityFrom(c), c.Param("id"), upsertNewsRequest(req).input())
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toNewsDTO(*n), "news item updated", nil)
}

func (h *NewsHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), IdentityFrom(c), c.Param("id")); err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}
