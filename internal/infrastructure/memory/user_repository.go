package memory

import (
	"context"
	"strings"
	"time"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
	"github.com/oksasatya/marketplace-api/internal/domain/repository"
)

type UserRepository struct {
	s *Store
}

// uniqueLocked enforces the users_email_key and users_phone_key constraints.
func (r *UserRepository) uniqueLocked(u *entity.User) error {
	for id, other := range r.s.users {
		if id == u.ID {
			continue
		}
		if other.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
		if other.Phone == u.Phone {
			return repository.ErrDuplicatePhone
		}
	}
	return nil
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.uniqueLocked(u); err != nil {
		return err
	}
	u.ID = r.s.newID()
	u.CreatedAt = r.s.now()
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if err := r.uniqueLocked(u); err != nil {
		return err
	}
	next := *u
	next.CreatedAt = cur.CreatedAt
	r.s.users[u.ID] = next
	return nil
}

func (r *UserRepository) SetAdmin(_ context.Context, id string, isAdmin bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.IsAdmin = isAdmin
	r.s.users[id] = u
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	for lid, l := range r.s.listings {
		if l.SellerID == id {
			r.s.deleteListingLocked(lid)
		}
	}
	delete(r.s.users, id)
	delete(r.s.order, id)
	return nil
}

func (r *UserRepository) List(_ context.Context, f repository.UserFilter) ([]entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entity.User, 0)
	for _, u := range r.s.users {
		if f.Role == "seller" && !u.IsSeller || f.Role == "buyer" && u.IsSeller {
			continue
		}
		if f.Search != "" && !strings.Contains(u.Name, f.Search) && !strings.Contains(u.Email, f.Search) {
			continue
		}
		out = append(out, u)
	}
	sortNewestFirst(r.s, out, func(u entity.User) (string, time.Time) { return u.ID, u.CreatedAt })
	return page(out, f.Offset, f.Limit), nil
}

func (r *UserRepository) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.users), nil
}

func (r *UserRepository) CountSellers(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, u := range r.s.users {
		if u.IsSeller {
			n++
		}
	}
	return n, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
