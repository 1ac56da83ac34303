package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
	"github.com/oksasatya/marketplace-api/internal/domain/repository"
)

const newsColumns = `id, title_en, title_vi, cover_url, location, body_en, body_vi, event_date, is_published, created_at, updated_at`

type NewsRepository struct {
	pool *pgxpool.Pool
}

func NewNewsRepository(pool *pgxpool.Pool) *NewsRepository {
	return &NewsRepository{pool: pool}
}

func scanNews(row scanner) (*entity.NewsItem, error) {
	n := &entity.NewsItem{}
	if err := row.Scan(&n.ID, &n.TitleEn, &n.TitleVi, &n.CoverURL, &n.Location, &n.BodyEn, &n.BodyVi,
		&n.EventDate, &n.IsPublished, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return n, nil
}

func (r *NewsRepository) list(ctx context.Context, sql string) ([]entity.NewsItem, error) {
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.NewsItem, 0)
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}

func (r *NewsRepository) Create(ctx context.Context, n *entity.NewsItem) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO news_items (title_en, title_vi, cover_url, location, body_en, body_vi, event_date, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, n.TitleEn, n.TitleVi, n.CoverURL, n.Location, n.BodyEn, n.BodyVi, n.EventDate, n.IsPublished)

	return mapError(row.Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt))
}

func (r *NewsRepository) GetByID(ctx context.Context, id string) (*entity.NewsItem, error) {
	return scanNews(r.pool.QueryRow(ctx, `SELECT `+newsColumns+` FROM news_items WHERE id = $1`, id))
}

func (r *NewsRepository) ListPublished(ctx context.Context) ([]entity.NewsItem, error) {
	return r.list(ctx, `
		SELECT `+newsColumns+`
		FROM news_items
		WHERE is_published = TRUE
		ORDER BY event_date DESC NULLS LAST, created_at DESC
	`)
}

func (r *NewsRepository) ListAll(ctx context.Context) ([]entity.NewsItem, error) {
	return r.list(ctx, `SELECT `+newsColumns+` FROM news_items ORDER BY created_at DESC`)
}

func (r *NewsRepository) Update(ctx context.Context, n *entity.NewsItem) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE news_items
		SET title_en = $1, title_vi = $2, cover_url = $3, location = $4, body_en = $5, body_vi = $6,
		    event_date = $7, is_published = $8, updated_at = now()
		WHERE id = $9
		RETURNING updated_at
	`, n.TitleEn, n.TitleVi, n.CoverURL, n.Location, n.BodyEn, n.BodyVi, n.EventDate, n.IsPublished, n.ID)

	return mapError(row.Scan(&n.UpdatedAt))
}

func (r *NewsRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM news_items WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.NewsRepository = (*NewsRepository)(nil)
