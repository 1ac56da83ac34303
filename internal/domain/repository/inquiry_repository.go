package repository

import (
	"context"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
)

// SellerInquiryFilter selects inquiries on the listings of one seller.
// A nil Status matches every status.
type SellerInquiryFilter struct {
	SellerID string
	Status   *entity.InquiryStatus
	Offset   int
	Limit    int
}

type InquiryRepository interface {
	Create(ctx context.Context, q *entity.Inquiry) error
	GetByID(ctx context.Context, id string) (*entity.Inquiry, error)
	List(ctx context.Context) ([]entity.Inquiry, error)
	ListByListing(ctx context.Context, listingID string) ([]entity.Inquiry, error)
	ListByBuyerEmail(ctx context.Context, email string) ([]entity.Inquiry, error)
	// ListBySeller returns one page of matches plus the total number of matches.
	ListBySeller(ctx context.Context, f SellerInquiryFilter) ([]entity.Inquiry, int, error)
	UpdateStatus(ctx context.Context, id string, status entity.InquiryStatus) (*entity.Inquiry, error)
}
