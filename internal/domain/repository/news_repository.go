package repository

import (
	"context"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
)

type NewsRepository interface {
	Create(ctx context.Context, n *entity.NewsItem) error
	GetByID(ctx context.Context, id string) (*entity.NewsItem, error)
	// ListPublished orders by event date, newest first, undated items last.
	ListPublished(ctx context.Context) ([]entity.NewsItem, error)
	// ListAll orders by creation time, newest first.
	ListAll(ctx context.Context) ([]entity.NewsItem, error)
	Update(ctx context.Context, n *entity.NewsItem) error
	Delete(ctx context.Context, id string) error
}
