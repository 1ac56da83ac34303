package memory

import (
	"context"
	"time"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
	"github.com/oksasatya/marketplace-api/internal/domain/repository"
)

type ContactRepository struct {
	s *Store
}

func (r *ContactRepository) Create(_ context.Context, m *entity.ContactMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m.ID = r.s.newID()
	m.CreatedAt = r.s.now()
	r.s.contacts[m.ID] = *m
	return nil
}

func (r *ContactRepository) List(_ context.Context, status string) ([]entity.ContactMessage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.ContactMessage, 0)
	for _, m := range r.s.contacts {
		if status == "" || m.Status == status {
			out = append(out, m)
		}
	}
	sortNewestFirst(r.s, out, func(m entity.ContactMessage) (string, time.Time) { return m.ID, m.CreatedAt })
	return out, nil
}

func (r *ContactRepository) MarkResponded(_ context.Context, id, respondedBy string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.contacts[id]
	if !ok {
		return repository.ErrNotFound
	}
	m.Status = entity.ContactResponded
	m.RespondedBy = &respondedBy
	r.s.contacts[id] = m
	return nil
}

var _ repository.ContactRepository = (*ContactRepository)(nil)
