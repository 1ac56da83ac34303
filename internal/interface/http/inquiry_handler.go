package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-api/internal/application"
	"github.com/oksasatya/marketplace-api/pkg/response"
)

type InquiryHandler struct {
	Svc    *application.InquiryService
	Logger *logrus.Logger
}

func NewInquiryHandler(svc *application.InquiryService, logger *logrus.Logger) *InquiryHandler {
	return &InquiryHandler{Svc: svc, Logger: logger}
}

// buyer fields are checked by the service, since authenticated callers may omit them
type createInquiryRequest struct {
	ListingID  string  `json:"listingId" binding:"required"`
	BuyerName  string  `json:"buyerName"`
	BuyerPhone string  `json:"buyerPhone"`
	BuyerEmail *string `json:"buyerEmail"`
	Quantity   int     `json:"quantity" binding:"required,min=1"`
	Message    *string `json:"message"`
}

// status is checked by the service after the owner gate
type updateInquiryStatusRequest struct {
	Status string `json:"status"`
}

func (h *InquiryHandler) Create(c *gin.Context) {
	var req createInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	q, err := h.Svc.Create(c.Request.Context(), IdentityFrom(c), application.CreateInquiryInput{
		ListingID:  req.ListingID,
		BuyerName:  req.BuyerName,
		BuyerPhone: req.BuyerPhone,
		BuyerEmail: req.BuyerEmail,
		Quantity:   req.Quantity,
		Message:    req.Message,
	})
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toInquiryDTO(*q), "inquiry created", nil)
}

func (h *InquiryHandler) ListAll(c *gin.Context) {
	items, err := h.Svc.ListAll(c.Request.Context(), IdentityFrom(c))
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toInquiryDTOs(items), "inquiries", nil)
}

func (h *InquiryHandler) ListByListing(c *gin.Context) {
	items, err := h.Svc.ListByListing(c.Request.Context(), IdentityFrom(c), c.Param("id"))
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toInquiryDTOs(items), "listing inquiries", nil)
}

func (h *InquiryHandler) Mine(c *gin.Context) {
	items, err := h.Svc.Mine(c.Request.Context(), IdentityFrom(c))
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toInquiryDTOs(items), "my inquiries", nil)
}

// SellerInbox GET /api/v1/seller/inquiries?status=&page=&per=
func (h *InquiryHandler) SellerInbox(c *gin.Context) {
	p, err := h.Svc.SellerInbox(c.Request.Context(), IdentityFrom(c), c.Query("status"), queryInt(c, "page"), queryInt(c, "per"))
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, PageDTO[InquiryDTO]{
		Items: toInquiryDTOs(p.Items), Page: p.Page, Per: p.Per, Total: p.Total,
	}, "seller inquiries", nil)
}

// UpdateStatus PATCH /api/v1/seller/inquiries/:id
func (h *InquiryHandler) UpdateStatus(c *gin.Context) {
	var req updateInquiryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	q, err := h.Svc.UpdateStatus(c.Request.Context(), IdentityFrom(c), c.Param("id"), req.Status)
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toInquiryDTO(*q), "inquiry updated", nil)
}
