package application

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
	"github.com/oksasatya/marketplace-api/internal/domain/repository"
	"github.com/oksasatya/marketplace-api/pkg/helpers"
)

const (
	defaultInquiryPageSize = 10
	maxPageSize            = 100
)

type InquiryService struct {
	Inquiries repository.InquiryRepository
	Listings  repository.ListingRepository
	Events    *Events
	Logger    *logrus.Logger
}

func NewInquiryService(inquiries repository.InquiryRepository, listings repository.ListingRepository, events *Events, logger *logrus.Logger) *InquiryService {
	return &InquiryService{Inquiries: inquiries, Listings: listings, Events: events, Logger: logger}
}

type CreateInquiryInput struct {
	ListingID  string
	BuyerName  string
	BuyerPhone string
	BuyerEmail *string
	Quantity   int
	Message    *string
}

// Create records an inquiry. For an authenticated caller the buyer contact fields
// come from the identity and the body values are ignored.
func (s *InquiryService) Create(ctx context.Context, id entity.Identity, in CreateInquiryInput) (*entity.Inquiry, error) {
	q := &entity.Inquiry{
		Quantity: in.Quantity,
		Message:  helpers.OptionalTrim(in.Message),
		Status:   entity.InquiryNew,
	}
	if id.IsAuthenticated() {
		q.BuyerName = id.User.Name
		q.BuyerPhone = helpers.NormalizePhone(id.User.Phone)
		email := helpers.NormalizeEmail(id.User.Email)
		q.BuyerEmail = &email
	} else {
		q.BuyerName = strings.TrimSpace(in.BuyerName)
		q.BuyerPhone = helpers.NormalizePhone(in.BuyerPhone)
		if in.BuyerEmail != nil {
			email := helpers.NormalizeEmail(*in.BuyerEmail)
			q.BuyerEmail = &email
		}
	}
	if q.BuyerEmail != nil && *q.BuyerEmail == "" {
		q.BuyerEmail = nil
	}

	fields := map[string]string{}
	lid, err := uuid.Parse(strings.TrimSpace(in.ListingID))
	if err != nil {
		fields["listingId"] = "must be a valid UUID"
	}
	required(fields, "buyerName", q.BuyerName)
	required(fields, "buyerPhone", q.BuyerPhone)
	if q.Quantity < 1 {
		fields["quantity"] = "must be at least 1"
	}
	if err := validationErr(fields); err != nil {
		return nil, err
	}
	q.ListingID = lid.String()

	// the insert itself checks the listing reference, so nothing is written on a miss
	if err := s.Inquiries.Create(ctx, q); err != nil {
		return nil, storeErr(err, "listing")
	}
	s.Events.Emit(ctx, EventInquiryCreated, map[string]any{
		"inquiry_id": q.ID,
		"listing_id": q.ListingID,
		"quantity":   q.Quantity,
	})
	return q, nil
}

// ListAll exposes every inquiry, including buyer contact details, to admins only.
func (s *InquiryService) ListAll(ctx context.Context, id entity.Identity) ([]entity.Inquiry, error) {
	if err := RequireAdmin(id); err != nil {
		return nil, err
	}
	items, err := s.Inquiries.List(ctx)
	if err != nil {
		return nil, Internal(err)
	}
	return items, nil
}

// ListByListing is limited to the listing owner or an admin.
func (s *InquiryService) ListByListing(ctx context.Context, id entity.Identity, listingID string) ([]entity.Inquiry, error) {
	lid, err := parseID(listingID, "listing")
	if err != nil {
		return nil, err
	}
	l, err := s.Listings.GetByID(ctx, lid)
	if err != nil {
		return nil, storeErr(err, "listing")
	}
	if err := RequireOwnerOrAdmin(id, l.SellerID, msgNotOwner); err != nil {
		return nil, err
	}
	items, err := s.Inquiries.ListByListing(ctx, l.ID)
	if err != nil {
		return nil, Internal(err)
	}
	return items, nil
}

// Mine lists inquiries the caller sent, matched by email, newest first.
func (s *InquiryService) Mine(ctx context.Context, id entity.Identity) ([]entity.Inquiry, error) {
	if !id.IsAuthenticated() {
		return nil, Unauthenticated("authentication required")
	}
	email := helpers.NormalizeEmail(id.User.Email)
	if email == "" {
		return []entity.Inquiry{}, nil
	}
	items, err := s.Inquiries.ListByBuyerEmail(ctx, email)
	if err != nil {
		return nil, Internal(err)
	}
	return items, nil
}

// SellerInbox pages through inquiries on the caller's listings.
// An unknown status value is ignored rather than rejected.
func (s *InquiryService) SellerInbox(ctx context.Context, id entity.Identity, status string, page, per int) (*Page[entity.Inquiry], error) {
	if !id.IsAuthenticated() {
		return nil, Unauthenticated("authentication required")
	}
	page, per = ClampPage(page, per, defaultInquiryPageSize, maxPageSize)
	f := repository.SellerInquiryFilter{SellerID: id.User.ID, Offset: offset(page, per), Limit: per}
	if st, ok := entity.ParseInquiryStatus(strings.TrimSpace(status)); ok {
		f.Status = &st
	}
	items, total, err := s.Inquiries.ListBySeller(ctx, f)
	if err != nil {
		return nil, Internal(err)
	}
	return &Page[entity.Inquiry]{Items: items, Page: page, Per: per, Total: total}, nil
}

// UpdateStatus lets the listing owner set any status; transitions are not restricted.
// Checks run in order: not found, not owner, then the status value.
func (s *InquiryService) UpdateStatus(ctx context.Context, id entity.Identity, inquiryID, status string) (*entity.Inquiry, error) {
	qid, err := parseID(inquiryID, "inquiry")
	if err != nil {
		return nil, err
	}
	q, err := s.Inquiries.GetByID(ctx, qid)
	if err != nil {
		return nil, storeErr(err, "inquiry")
	}
	l, err := s.Listings.GetByID(ctx, q.ListingID)
	if err != nil {
		return nil, storeErr(err, "inquiry")
	}
	if err := RequireOwner(id, l.SellerID, msgNotOwner); err != nil {
		return nil, err
	}
	st, ok := entity.ParseInquiryStatus(strings.TrimSpace(status))
	if !ok {
		return nil, Validation("invalid input", map[string]string{"status": "must be one of: new, contacted, closed"})
	}
	prev := q.Status
	updated, err := s.Inquiries.UpdateStatus(ctx, q.ID, st)
	if err != nil {
		return nil, storeErr(err, "inquiry")
	}
	s.Events.Emit(ctx, EventInquiryStatusChanged, map[string]any{
		"inquiry_id": q.ID,
		"listing_id": q.ListingID,
		"from":       string(prev),
		"to":         string(st),
	})
	return updated, nil
}
