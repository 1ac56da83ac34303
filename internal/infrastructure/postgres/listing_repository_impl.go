package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
	"github.com/oksasatya/marketplace-api/internal/domain/repository"
)

const listingColumns = `l.id, l.seller_id, l.title, l."desc", l.price, l.min_order_qty, l.stock, l.image_urls, l.created_at`

type ListingRepository struct {
	pool *pgxpool.Pool
}

func NewListingRepository(pool *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{pool: pool}
}

func scanListing(row scanner) (*entity.Listing, error) {
	l := &entity.Listing{}
	if err := row.Scan(&l.ID, &l.SellerID, &l.Title, &l.Desc, &l.Price, &l.MinOrderQty, &l.Stock,
		&l.ImageURLs, &l.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	if l.ImageURLs == nil {
		l.ImageURLs = []string{}
	}
	return l, nil
}

func imageURLs(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func (r *ListingRepository) Create(ctx context.Context, l *entity.Listing) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO listings (seller_id, title, "desc", price, min_order_qty, stock, image_urls)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, l.SellerID, l.Title, l.Desc, l.Price, l.MinOrderQty, l.Stock, imageURLs(l.ImageURLs))

	return mapError(row.Scan(&l.ID, &l.CreatedAt))
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	return scanListing(r.pool.QueryRow(ctx, `SELECT `+listingColumns+` FROM listings l WHERE l.id = $1`, id))
}

func (r *ListingRepository) List(ctx context.Context, f repository.ListingFilter) ([]entity.Listing, error) {
	var (
		conds []string
		args  []any
	)
	q := `SELECT ` + listingColumns + ` FROM listings l`
	if f.OriginCountry != "" {
		q += ` JOIN users u ON u.id = l.seller_id`
		args = append(args, f.OriginCountry)
		conds = append(conds, fmt.Sprintf("u.origin_country = $%d", len(args)))
	}
	if f.SellerID != "" {
		args = append(args, f.SellerID)
		conds = append(conds, fmt.Sprintf("l.seller_id = $%d", len(args)))
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY l.created_at DESC"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

func (r *ListingRepository) Update(ctx context.Context, l *entity.Listing) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE listings
		SET title = $1, "desc" = $2, price = $3, min_order_qty = $4, stock = $5, image_urls = $6
		WHERE id = $7
	`, l.Title, l.Desc, l.Price, l.MinOrderQty, l.Stock, imageURLs(l.ImageURLs), l.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM inquiries WHERE listing_id = $1`, id); err != nil {
			return fmt.Errorf("delete inquiries: %w", err)
		}
		res, err := tx.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete listing: %w", err)
		}
		if res.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

func (r *ListingRepository) DeleteBySeller(ctx context.Context, sellerID string) (int64, error) {
	var deleted int64
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			DELETE FROM inquiries
			WHERE listing_id IN (SELECT id FROM listings WHERE seller_id = $1)
		`, sellerID); err != nil {
			return fmt.Errorf("delete inquiries: %w", err)
		}
		res, err := tx.Exec(ctx, `DELETE FROM listings WHERE seller_id = $1`, sellerID)
		if err != nil {
			return fmt.Errorf("delete listings: %w", err)
		}
		deleted = res.RowsAffected()
		return nil
	})
	return deleted, err
}

func (r *ListingRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM listings`).Scan(&n)
	return n, err
}

func (r *ListingRepository) CountBySellers(ctx context.Context, sellerIDs []string) (map[string]int, error) {
	out := make(map[string]int, len(sellerIDs))
	if len(sellerIDs) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT seller_id::text, count(*)
		FROM listings
		WHERE seller_id = ANY($1::uuid[])
		GROUP BY seller_id
	`, sellerIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id string
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		out[id] = n
	}
	return out, rows.Err()
}

var _ repository.ListingRepository = (*ListingRepository)(nil)
