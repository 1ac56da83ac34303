package memory

import (
	"context"
	"time"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
	"github.com/oksasatya/marketplace-api/internal/domain/repository"
)

type InquiryRepository struct {
	s *Store
}

func (r *InquiryRepository) Create(_ context.Context, q *entity.Inquiry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	// inquiries.listing_id references listings(id)
	if _, ok := r.s.listings[q.ListingID]; !ok {
		return repository.ErrNotFound
	}
	now := r.s.now()
	q.ID = r.s.newID()
	q.CreatedAt = now
	q.UpdatedAt = now
	r.s.inquiries[q.ID] = *q
	return nil
}

func (r *InquiryRepository) GetByID(_ context.Context, id string) (*entity.Inquiry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q, ok := r.s.inquiries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &q, nil
}

func (r *InquiryRepository) filter(keep func(entity.Inquiry) bool) []entity.Inquiry {
	out := make([]entity.Inquiry, 0)
	for _, q := range r.s.inquiries {
		if keep(q) {
			out = append(out, q)
		}
	}
	sortNewestFirst(r.s, out, func(q entity.Inquiry) (string, time.Time) { return q.ID, q.CreatedAt })
	return out
}

func (r *InquiryRepository) List(_ context.Context) ([]entity.Inquiry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.filter(func(entity.Inquiry) bool { return true }), nil
}

func (r *InquiryRepository) ListByListing(_ context.Context, listingID string) ([]entity.Inquiry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.filter(func(q entity.Inquiry) bool { return q.ListingID == listingID }), nil
}

func (r *InquiryRepository) ListByBuyerEmail(_ context.Context, email string) ([]entity.Inquiry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.filter(func(q entity.Inquiry) bool {
		return q.BuyerEmail != nil && *q.BuyerEmail == email
	}), nil
}

func (r *InquiryRepository) ListBySeller(_ context.Context, f repository.SellerInquiryFilter) ([]entity.Inquiry, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.filter(func(q entity.Inquiry) bool {
		l, ok := r.s.listings[q.ListingID]
		if !ok || l.SellerID != f.SellerID {
			return false
		}
		return f.Status == nil || q.Status == *f.Status
	})
	return page(all, f.Offset, f.Limit), len(all), nil
}

func (r *InquiryRepository) UpdateStatus(_ context.Context, id string, status entity.InquiryStatus) (*entity.Inquiry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.inquiries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	q.Status = status
	q.UpdatedAt = r.s.now()
	r.s.inquiries[id] = q
	return &q, nil
}

var _ repository.InquiryRepository = (*InquiryRepository)(nil)
