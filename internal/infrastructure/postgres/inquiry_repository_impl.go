package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
	"github.com/oksasatya/marketplace-api/internal/domain/repository"
)

const inquiryColumns = `i.id, i.listing_id, i.buyer_name, i.buyer_phone, i.buyer_email, i.quantity, i.message, i.status, i.created_at, i.updated_at`

type InquiryRepository struct {
	pool *pgxpool.Pool
}

func NewInquiryRepository(pool *pgxpool.Pool) *InquiryRepository {
	return &InquiryRepository{pool: pool}
}

func scanInquiry(row scanner) (*entity.Inquiry, error) {
	q := &entity.Inquiry{}
	var status string
	if err := row.Scan(&q.ID, &q.ListingID, &q.BuyerName, &q.BuyerPhone, &q.BuyerEmail, &q.Quantity,
		&q.Message, &status, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	q.Status = entity.InquiryStatus(status)
	return q, nil
}

func (r *InquiryRepository) collect(ctx context.Context, sql string, args ...any) ([]entity.Inquiry, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Inquiry, 0)
	for rows.Next() {
		q, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	return out, rows.Err()
}

func (r *InquiryRepository) Create(ctx context.Context, q *entity.Inquiry) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO inquiries (listing_id, buyer_name, buyer_phone, buyer_email, quantity, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, q.ListingID, q.BuyerName, q.BuyerPhone, q.BuyerEmail, q.Quantity, q.Message, string(q.Status))

	return mapError(row.Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt))
}

func (r *InquiryRepository) GetByID(ctx context.Context, id string) (*entity.Inquiry, error) {
	return scanInquiry(r.pool.QueryRow(ctx, `SELECT `+inquiryColumns+` FROM inquiries i WHERE i.id = $1`, id))
}

func (r *InquiryRepository) List(ctx context.Context) ([]entity.Inquiry, error) {
	return r.collect(ctx, `SELECT `+inquiryColumns+` FROM inquiries i ORDER BY i.created_at DESC`)
}

func (r *InquiryRepository) ListByListing(ctx context.Context, listingID string) ([]entity.Inquiry, error) {
	return r.collect(ctx, `
		SELECT `+inquiryColumns+`
		FROM inquiries i
		WHERE i.listing_id = $1
		ORDER BY i.created_at DESC
	`, listingID)
}

func (r *InquiryRepository) ListByBuyerEmail(ctx context.Context, email string) ([]entity.Inquiry, error) {
	return r.collect(ctx, `
		SELECT `+inquiryColumns+`
		FROM inquiries i
		WHERE i.buyer_email = $1
		ORDER BY i.created_at DESC
	`, email)
}

func (r *InquiryRepository) ListBySeller(ctx context.Context, f repository.SellerInquiryFilter) ([]entity.Inquiry, int, error) {
	where := `FROM inquiries i JOIN listings l ON l.id = i.listing_id WHERE l.seller_id = $1`
	args := []any{f.SellerID}
	if f.Status != nil {
		args = append(args, string(*f.Status))
		where += fmt.Sprintf(" AND i.status = $%d", len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entity.Inquiry{}, 0, nil
	}

	args = append(args, f.Limit, f.Offset)
	items, err := r.collect(ctx, fmt.Sprintf(`SELECT %s %s ORDER BY i.created_at DESC LIMIT $%d OFFSET $%d`,
		inquiryColumns, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *InquiryRepository) UpdateStatus(ctx context.Context, id string, status entity.InquiryStatus) (*entity.Inquiry, error) {
	return scanInquiry(r.pool.QueryRow(ctx, `
		UPDATE inquiries i
		SET status = $2, updated_at = now()
		WHERE i.id = $1
		RETURNING `+inquiryColumns, id, string(status)))
}

var _ repository.InquiryRepository = (*InquiryRepository)(nil)
