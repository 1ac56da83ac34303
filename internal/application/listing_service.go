package application

import (
	"context"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
	"github.com/oksasatya/marketplace-api/internal/domain/repository"
)

const (
	msgSellersOnly = "Only sellers can create listings"
	msgNotOwner    = "You don't own this listing"
)

type ListingService struct {
	Listings repository.ListingRepository
	Users    repository.UserRepository
	Events   *Events
	Logger   *logrus.Logger
}

func NewListingService(listings repository.ListingRepository, users repository.UserRepository, events *Events, logger *logrus.Logger) *ListingService {
	return &ListingService{Listings: listings, Users: users, Events: events, Logger: logger}
}

type CreateListingInput struct {
	Title       string
	Desc        string
	Price       float64
	MinOrderQty int
	Stock       int
	ImageURLs   []string
}

// UpdateListingInput is a partial update; nil fields are left untouched.
type UpdateListingInput struct {
	Title       *string
	Desc        *string
	Price       *float64
	MinOrderQty *int
	Stock       *int
	ImageURLs   *[]string
}

func validateListing(l *entity.Listing) error {
	fields := map[string]string{}
	required(fields, "title", l.Title)
	if l.Price < 0 || math.IsNaN(l.Price) || math.IsInf(l.Price, 0) {
		fields["price"] = "must be at least 0"
	}
	if l.MinOrderQty < 1 {
		fields["minOrderQty"] = "must be at least 1"
	}
	if l.Stock < 0 {
		fields["stock"] = "must be at least 0"
	}
	return validationErr(fields)
}

// List returns all listings, or those whose seller comes from originCountry (exact match after trim).
func (s *ListingService) List(ctx context.Context, originCountry string) ([]entity.Listing, error) {
	items, err := s.Listings.List(ctx, repository.ListingFilter{OriginCountry: strings.TrimSpace(originCountry)})
	if err != nil {
		return nil, Internal(err)
	}
	return items, nil
}

// Get returns the listing and its seller, fetched separately.
func (s *ListingService) Get(ctx context.Context, id string) (*entity.ListingDetail, error) {
	l, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	seller, err := s.Users.GetByID(ctx, l.SellerID)
	if err != nil {
		// a listing always has a seller, so a miss here is a broken invariant
		return nil, Internal(err)
	}
	return &entity.ListingDetail{Listing: *l, Seller: *seller}, nil
}

func (s *ListingService) Create(ctx context.Context, id entity.Identity, in CreateListingInput) (*entity.Listing, error) {
	if !id.IsAuthenticated() {
		return nil, Unauthenticated("authentication required")
	}
	if !id.User.IsSeller {
		return nil, Forbidden(msgSellersOnly)
	}
	l := &entity.Listing{
		SellerID:    id.User.ID,
		Title:       strings.TrimSpace(in.Title),
		Desc:        in.Desc,
		Price:       in.Price,
		MinOrderQty: in.MinOrderQty,
		Stock:       in.Stock,
		ImageURLs:   in.ImageURLs,
	}
	if l.ImageURLs == nil {
		l.ImageURLs = []string{}
	}
	if err := validateListing(l); err != nil {
		return nil, err
	}
	if err := s.Listings.Create(ctx, l); err != nil {
		// the seller may have been deleted since the token was resolved
		return nil, storeErr(err, "seller")
	}
	s.Events.Emit(ctx, EventListingCreated, map[string]any{"listing_id": l.ID, "seller_id": l.SellerID})
	return l, nil
}

func (s *ListingService) Mine(ctx context.Context, id entity.Identity) ([]entity.Listing, error) {
	if !id.IsAuthenticated() {
		return nil, Unauthenticated("authentication required")
	}
	items, err := s.Listings.List(ctx, repository.ListingFilter{SellerID: id.User.ID})
	if err != nil {
		return nil, Internal(err)
	}
	return items, nil
}

func (s *ListingService) Update(ctx context.Context, id entity.Identity, listingID string, in UpdateListingInput) (*entity.Listing, error) {
	l, err := s.load(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if err := RequireOwner(id, l.SellerID, msgNotOwner); err != nil {
		s.denied("update", id, l.ID)
		return nil, err
	}
	if in.Title != nil {
		l.Title = strings.TrimSpace(*in.Title)
	}
	if in.Desc != nil {
		l.Desc = *in.Desc
	}
	if in.Price != nil {
		l.Price = *in.Price
	}
	if in.MinOrderQty != nil {
		l.MinOrderQty = *in.MinOrderQty
	}
	if in.Stock != nil {
		l.Stock = *in.Stock
	}
	if in.ImageURLs != nil {
		l.ImageURLs = *in.ImageURLs
		if l.ImageURLs == nil {
			l.ImageURLs = []string{}
		}
	}
	if err := validateListing(l); err != nil {
		return nil, err
	}
	if err := s.Listings.Update(ctx, l); err != nil {
		return nil, storeErr(err, "listing")
	}
	return l, nil
}

// Delete removes the listing and its inquiries. Only the owner may delete.
func (s *ListingService) Delete(ctx context.Context, id entity.Identity, listingID string) error {
	l, err := s.load(ctx, listingID)
	if err != nil {
		return err
	}
	if err := RequireOwner(id, l.SellerID, msgNotOwner); err != nil {
		s.denied("delete", id, l.ID)
		return err
	}
	if err := s.Listings.Delete(ctx, l.ID); err != nil {
		return storeErr(err, "listing")
	}
	if s.Logger != nil {
		s.Logger.WithField("listing_id", l.ID).WithField("user_id", id.UserID()).Info("listing deleted")
	}
	s.Events.Emit(ctx, EventListingDeleted, map[string]any{"listing_id": l.ID, "seller_id": l.SellerID})
	return nil
}

func (s *ListingService) load(ctx context.Context, rawID string) (*entity.Listing, error) {
	lid, err := parseID(rawID, "listing")
	if err != nil {
		return nil, err
	}
	l, err := s.Listings.GetByID(ctx, lid)
	if err != nil {
		return nil, storeErr(err, "listing")
	}
	return l, nil
}

func (s *ListingService) denied(op string, id entity.Identity, listingID string) {
	if s.Logger != nil {
		s.Logger.WithField("user_id", id.UserID()).WithField("listing_id", listingID).Warnf("%s listing denied: not owner", op)
	}
}
