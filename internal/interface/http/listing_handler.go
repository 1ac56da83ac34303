package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-api/internal/application"
	"github.com/oksasatya/marketplace-api/pkg/response"
)

type ListingHandler struct {
	Svc    *application.ListingService
	Logger *logrus.Logger
}

func NewListingHandler(svc *application.ListingService, logger *logrus.Logger) *ListingHandler {
	return &ListingHandler{Svc: svc, Logger: logger}
}

type createListingRequest struct {
	Title       string   `json:"title" binding:"required,notblank"`
	Desc        string   `json:"desc"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	MinOrderQty *int     `json:"minOrderQty" binding:"required,min=1"`
	Stock       *int     `json:"stock" binding:"required,min=0"`
	ImageURLs   []string `json:"imageUrls"`
}

// updateListingRequest is only decoded here; values are validated by the
// service once the listing is loaded and the owner check has passed.
type updateListingRequest struct {
	Title       *string   `json:"title"`
	Desc        *string   `json:"desc"`
	Price       *float64  `json:"price"`
	MinOrderQty *int      `json:"minOrderQty"`
	Stock       *int      `json:"stock"`
	ImageURLs   *[]string `json:"imageUrls"`
}

// List GET /api/v1/listings?originCountry= (alias origin)
func (h *ListingHandler) List(c *gin.Context) {
	origin := c.Query("originCountry")
	if origin == "" {
		origin = c.Query("origin")
	}
	items, err := h.Svc.List(c.Request.Context(), origin)
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toListingDTOs(items), "listings", nil)
}

func (h *ListingHandler) Get(c *gin.Context) {
	d, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	dto := toListingDTO(d.Listing)
	dto.Seller = &SellerDTO{ID: d.Seller.ID, Name: d.Seller.Name, OriginCountry: d.Seller.OriginCountry}
	response.Success(c, http.StatusOK, dto, "listing", nil)
}

func (h *ListingHandler) Create(c *gin.Context) {
	id := IdentityFrom(c)
	// role first, so a non-seller gets 403 regardless of the body
	if id.IsAuthenticated() && !id.User.IsSeller {
		WriteError(c, h.Logger, application.Forbidden("Only sellers can create listings"))
		return
	}
	var req createListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	l, err := h.Svc.Create(c.Request.Context(), id, application.CreateListingInput{
		Title:       req.Title,
		Desc:        req.Desc,
		Price:       *req.Price,
		MinOrderQty: *req.MinOrderQty,
		Stock:       *req.Stock,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toListingDTO(*l), "listing created", nil)
}

func (h *ListingHandler) Mine(c *gin.Context) {
	items, err := h.Svc.Mine(c.Request.Context(), IdentityFrom(c))
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toListingDTOs(items), "my listings", nil)
}

func (h *ListingHandler) Update(c *gin.Context) {
	var req updateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	l, err := h.Svc.Update(c.Request.Context(), IdentityFrom(c), c.Param("id"), application.UpdateListingInput{
		Title:       req.Title,
		Desc:        req.Desc,
		Price:       req.Price,
		MinOrderQty: req.MinOrderQty,
		Stock:       req.Stock,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toListingDTO(*l), "listing updated", nil)
}

func (h *ListingHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), IdentityFrom(c), c.Param("id")); err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}
