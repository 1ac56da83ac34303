package memory

import (
	"context"
	"sort"
	"time"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
	"github.com/oksasatya/marketplace-api/internal/domain/repository"
)

type NewsRepository struct {
	s *Store
}

func (r *NewsRepository) Create(_ context.Context, n *entity.NewsItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	n.ID = r.s.newID()
	n.CreatedAt = now
	n.UpdatedAt = now
	r.s.news[n.ID] = *n
	return nil
}

func (r *NewsRepository) GetByID(_ context.Context, id string) (*entity.NewsItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n, ok := r.s.news[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &n, nil
}

func (r *NewsRepository) ListPublished(_ context.Context) ([]entity.NewsItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.NewsItem, 0)
	for _, n := range r.s.news {
		if n.IsPublished {
			out = append(out, n)
		}
	}
	// event_date DESC NULLS LAST, created_at DESC
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.EventDate != nil && b.EventDate != nil && !a.EventDate.Equal(*b.EventDate):
			return a.EventDate.After(*b.EventDate)
		case a.EventDate != nil && b.EventDate == nil:
			return true
		case a.EventDate == nil && b.EventDate != nil:
			return false
		}
		return r.s.newer(a.ID, a.CreatedAt, b.ID, b.CreatedAt)
	})
	return out, nil
}

func (r *NewsRepository) ListAll(_ context.Context) ([]entity.NewsItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.NewsItem, 0, len(r.s.news))
	for _, n := range r.s.news {
		out = append(out, n)
	}
	sortNewestFirst(r.s, out, func(n entity.NewsItem) (string, time.Time) { return n.ID, n.CreatedAt })
	return out, nil
}

func (r *NewsRepository) Update(_ context.Context, n *entity.NewsItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.news[n.ID]
	if !ok {
		return repository.ErrNotFound
	}
	n.CreatedAt = cur.CreatedAt
	n.UpdatedAt = r.s.now()
	r.s.news[n.ID] = *n
	return nil
}

func (r *NewsRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.news[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.news, id)
	delete(r.s.order, id)
	return nil
}

var _ repository.NewsRepository = (*NewsRepository)(nil)
