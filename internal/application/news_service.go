package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
	"github.com/oksasatya/marketplace-api/internal/domain/repository"
	"github.com/oksasatya/marketplace-api/pkg/helpers"
)

const publishedNewsKey = "news:published"

type NewsService struct {
	News     repository.NewsRepository
	Cache    Cache // optional
	CacheTTL time.Duration
	Logger   *logrus.Logger
}

func NewNewsService(news repository.NewsRepository, cache Cache, cacheTTL time.Duration, logger *logrus.Logger) *NewsService {
	return &NewsService{News: news, Cache: cache, CacheTTL: cacheTTL, Logger: logger}
}

// NewsInput is a full replacement of the editable fields.
type NewsInput struct {
	TitleEn     string
	TitleVi     string
	CoverURL    *string
	Location    *string
	BodyEn      *string
	BodyVi      *string
	EventDate   *time.Time
	IsPublished bool
}

func (in NewsInput) apply(n *entity.NewsItem) error {
	n.TitleEn = strings.TrimSpace(in.TitleEn)
	n.TitleVi = strings.TrimSpace(in.TitleVi)
	n.CoverURL = helpers.OptionalTrim(in.CoverURL)
	n.Location = helpers.OptionalTrim(in.Location)
	n.BodyEn = in.BodyEn
	n.BodyVi = in.BodyVi
	n.EventDate = in.EventDate
	n.IsPublished = in.IsPublished

	fields := map[string]string{}
	required(fields, "titleEn", n.TitleEn)
	required(fields, "titleVi", n.TitleVi)
	return validationErr(fields)
}

// ListPublished serves from the cache when available; cache errors fall through to the store.
func (s *NewsService) ListPublished(ctx context.Context) ([]entity.NewsItem, error) {
	if s.Cache != nil {
		var cached []entity.NewsItem
		hit, err := s.Cache.GetJSON(ctx, publishedNewsKey, &cached)
		if err != nil {
			s.warn(err, "news cache read failed")
		} else if hit {
			return cached, nil
		}
	}
	items, err := s.News.ListPublished(ctx)
	if err != nil {
		return nil, Internal(err)
	}
	if s.Cache != nil {
		if err := s.Cache.SetJSON(ctx, publishedNewsKey, items, s.CacheTTL); err != nil {
			s.warn(err, "news cache write failed")
		}
	}
	return items, nil
}

// GetPublished hides unpublished items behind NotFound.
func (s *NewsService) GetPublished(ctx context.Context, id string) (*entity.NewsItem, error) {
	n, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !n.IsPublished {
		return nil, NotFound("news item not found")
	}
	return n, nil
}

func (s *NewsService) ListAll(ctx context.Context, id entity.Identity) ([]entity.NewsItem, error) {
	if err := RequireAdmin(id); err != nil {
		return nil, err
	}
	items, err := s.News.ListAll(ctx)
	if err != nil {
		return nil, Internal(err)
	}
	return items, nil
}

func (s *NewsService) Create(ctx context.Context, id entity.Identity, in NewsInput) (*entity.NewsItem, error) {
	if err := RequireAdmin(id); err != nil {
		return nil, err
	}
	n := &entity.NewsItem{}
	if err := in.apply(n); err != nil {
		return nil, err
	}
	if err := s.News.Create(ctx, n); err != nil {
		return nil, Internal(err)
	}
	s.invalidate(ctx)
	return n, nil
}

func (s *NewsService) Update(ctx context.Context, id entity.Identity, newsID string, in NewsInput) (*entity.NewsItem, error) {
	if err := RequireAdmin(id); err != nil {
		return nil, err
	}
	n, err := s.load(ctx, newsID)
	if err != nil {
		return nil, err
	}
	if err := in.apply(n); err != nil {
		return nil, err
	}
	if err := s.News.Update(ctx, n); err != nil {
		return nil, storeErr(err, "news item")
	}
	s.invalidate(ctx)
	return n, nil
}

func (s *NewsService) Delete(ctx context.Context, id entity.Identity, newsID string) error {
	if err := RequireAdmin(id); err != nil {
		return err
	}
	nid, err := parseID(newsID, "news item")
	if err != nil {
		return err
	}
	if err := s.News.Delete(ctx, nid); err != nil {
		return storeErr(err, "news item")
	}
	s.invalidate(ctx)
	return nil
}

func (s *NewsService) load(ctx context.Context, rawID string) (*entity.NewsItem, error) {
	nid, err := parseID(rawID, "news item")
	if err != nil {
		return nil, err
	}
	n, err := s.News.GetByID(ctx, nid)
	if err != nil {
		return nil, storeErr(err, "news item")
	}
	return n, nil
}

func (s *NewsService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, publishedNewsKey); err != nil {
		s.warn(err, "news cache invalidation failed")
	}
}

func (s *NewsService) warn(err error, msg string) {
	if s.Logger != nil && !errors.Is(err, context.Canceled) {
		s.Logger.WithError(err).WithField("key", publishedNewsKey).Warn(msg)
	}
}
