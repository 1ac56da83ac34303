package repository

import (
	"context"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
)

// UserFilter narrows the admin user listing.
// Role is "seller", "buyer" or empty; Search is a case-sensitive substring of name or email.
type UserFilter struct {
	Role   string
	Search string
	Offset int
	Limit  int
}

// UserRepository defines the interface for user-related database operations.
// Create and Update report ErrDuplicateEmail / ErrDuplicatePhone on unique violations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
	// Delete removes the user, their listings and those listings' inquiries atomically.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f UserFilter) ([]entity.User, error)
	Count(ctx context.Context) (int, error)
	CountSellers(ctx context.Context) (int, error)
}
