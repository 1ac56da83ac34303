package repository

import (
	"context"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
)

type ContactRepository interface {
	Create(ctx context.Context, m *entity.ContactMessage) error
	// List returns messages newest first; an empty status matches all.
	List(ctx context.Context, status string) ([]entity.ContactMessage, error)
	MarkResponded(ctx context.Context, id, respondedBy string) error
}
