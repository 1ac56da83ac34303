package repository

import (
	"context"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
)

// ListingFilter narrows listing queries. Empty fields are ignored.
// OriginCountry matches the seller's origin country exactly.
type ListingFilter struct {
	SellerID      string
	OriginCountry string
}

type ListingRepository interface {
	Create(ctx context.Context, l *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	List(ctx context.Context, f ListingFilter) ([]entity.Listing, error)
	Update(ctx context.Context, l *entity.Listing) error
	// Delete removes the listing and its inquiries atomically.
	Delete(ctx context.Context, id string) error
	// DeleteBySeller removes every listing of sellerID and their inquiries atomically.
	DeleteBySeller(ctx context.Context, sellerID string) (int64, error)
	Count(ctx context.Context) (int, error)
	CountBySellers(ctx context.Context, sellerIDs []string) (map[string]int, error)
}
