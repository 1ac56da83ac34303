package memory

import (
	"context"
	"time"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
	"github.com/oksasatya/marketplace-api/internal/domain/repository"
)

type ListingRepository struct {
	s *Store
}

func (r *ListingRepository) Create(_ context.Context, l *entity.Listing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	// listings.seller_id references users(id)
	if _, ok := r.s.users[l.SellerID]; !ok {
		return repository.ErrNotFound
	}
	l.ID = r.s.newID()
	l.CreatedAt = r.s.now()
	if l.ImageURLs == nil {
		l.ImageURLs = []string{}
	}
	r.s.listings[l.ID] = cloneListing(*l)
	return nil
}

func (r *ListingRepository) GetByID(_ context.Context, id string) (*entity.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.listings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	l = cloneListing(l)
	return &l, nil
}

func (r *ListingRepository) List(_ context.Context, f repository.ListingFilter) ([]entity.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entity.Listing, 0)
	for _, l := range r.s.listings {
		if f.SellerID != "" && l.SellerID != f.SellerID {
			continue
		}
		if f.OriginCountry != "" {
			seller, ok := r.s.users[l.SellerID]
			if !ok || seller.OriginCountry != f.OriginCountry {
				continue
			}
		}
		out = append(out, cloneListing(l))
	}
	sortNewestFirst(r.s, out, func(l entity.Listing) (string, time.Time) { return l.ID, l.CreatedAt })
	return out, nil
}

func (r *ListingRepository) Update(_ context.Context, l *entity.Listing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.listings[l.ID]
	if !ok {
		return repository.ErrNotFound
	}
	next := cloneListing(*l)
	next.SellerID = cur.SellerID
	next.CreatedAt = cur.CreatedAt
	r.s.listings[l.ID] = next
	return nil
}

func (r *ListingRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.listings[id]; !ok {
		return repository.ErrNotFound
	}
	r.s.deleteListingLocked(id)
	return nil
}

func (r *ListingRepository) DeleteBySeller(_ context.Context, sellerID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, l := range r.s.listings {
		if l.SellerID == sellerID {
			r.s.deleteListingLocked(id)
			n++
		}
	}
	return n, nil
}

func (r *ListingRepository) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.listings), nil
}

func (r *ListingRepository) CountBySellers(_ context.Context, sellerIDs []string) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	want := make(map[string]struct{}, len(sellerIDs))
	for _, id := range sellerIDs {
		want[id] = struct{}{}
	}
	out := make(map[string]int, len(sellerIDs))
	for _, l := range r.s.listings {
		if _, ok := want[l.SellerID]; ok {
			out[l.SellerID]++
		}
	}
	return out, nil
}

var _ repository.ListingRepository = (*ListingRepository)(nil)
