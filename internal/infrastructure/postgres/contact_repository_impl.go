package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
	"github.com/oksasatya/marketplace-api/internal/domain/repository"
)

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Create(ctx context.Context, m *entity.ContactMessage) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO contact_messages (name, email, phone, company, message, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, m.Name, m.Email, m.Phone, m.Company, m.Message, m.Status)

	return mapError(row.Scan(&m.ID, &m.CreatedAt))
}

func (r *ContactRepository) List(ctx context.Context, status string) ([]entity.ContactMessage, error) {
	q := `SELECT id, name, email, phone, company, message, status, responded_by, created_at FROM contact_messages`
	var args []any
	if status != "" {
		q += ` WHERE status = $1`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.ContactMessage, 0)
	for rows.Next() {
		var m entity.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Company, &m.Message, &m.Status,
			&m.RespondedBy, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *ContactRepository) MarkResponded(ctx context.Context, id, respondedBy string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE contact_messages SET status = $1, responded_by = $2 WHERE id = $3
	`, entity.ContactResponded, respondedBy, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ContactRepository = (*ContactRepository)(nil)
