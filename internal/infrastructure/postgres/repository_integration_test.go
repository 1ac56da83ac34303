//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
	"github.com/oksasatya/marketplace-api/internal/domain/repository"
)

const migrationsDir = "../../../db/migrations"

func skipIfNoDocker(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("docker not available")
	}
}

// startPostgres boots a throwaway database, applies the migrations and returns a pool.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
	}
	skipIfNoDocker(t)
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "market",
				"POSTGRES_PASSWORD": "market",
				"POSTGRES_DB":       "market",
			},
			// the server restarts once after init, so the ready line shows up twice
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := c.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://market:market@%s:%s/market?sslmode=disable", host, port.Port())

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		t.Fatalf("migrate driver: %v", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsDir, "postgres", driver)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("migrate up: %v", err)
	}

	pool, err := NewPool(ctx, dsn, 4, 1, time.Minute)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

type repos struct {
	users     *UserRepository
	listings  *ListingRepository
	inquiries *InquiryRepository
}

func newRepos(t *testing.T) repos {
	pool := startPostgres(t)
	return repos{
		users:     NewUserRepository(pool),
		listings:  NewListingRepository(pool),
		inquiries: NewInquiryRepository(pool),
	}
}

func (r repos) seller(t *testing.T, email, phone string) *entity.User {
	t.Helper()
	u := &entity.User{Name: "Seller", Email: email, Phone: phone, PasswordHash: "x", IsSeller: true}
	if err := r.users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func (r repos) listing(t *testing.T, sellerID string) *entity.Listing {
	t.Helper()
	l := &entity.Listing{SellerID: sellerID, Title: "Rice", Price: 10, MinOrderQty: 1, Stock: 5}
	if err := r.listings.Create(context.Background(), l); err != nil {
		t.Fatalf("create listing: %v", err)
	}
	return l
}

func (r repos) inquiry(t *testing.T, listingID string) *entity.Inquiry {
	t.Helper()
	q := &entity.Inquiry{ListingID: listingID, BuyerName: "Buyer", BuyerPhone: "1", Quantity: 1, Status: entity.InquiryNew}
	if err := r.inquiries.Create(context.Background(), q); err != nil {
		t.Fatalf("create inquiry: %v", err)
	}
	return q
}

// One container serves every case; each subtest uses its own emails and phones.
func TestRepositories(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	t.Run("user uniqueness", func(t *testing.T) {
		r.seller(t, "a@example.com", "111")
		tests := []struct {
			name  string
			email string
			phone string
			want  error
		}{
			{"duplicate email", "a@example.com", "222", repository.ErrDuplicateEmail},
			{"duplicate phone", "b@example.com", "111", repository.ErrDuplicatePhone},
			{"unique", "c@example.com", "333", nil},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := r.users.Create(ctx, &entity.User{Name: "U", Email: tt.email, Phone: tt.phone, PasswordHash: "x"})
				if !errors.Is(err, tt.want) {
					t.Fatalf("expected %v, got %v", tt.want, err)
				}
			})
		}
	})

	t.Run("update keeps own email and rejects taken ones", func(t *testing.T) {
		u := r.seller(t, "keep@example.com", "444")
		u.Name = "Renamed"
		if err := r.users.Update(ctx, u); err != nil {
			t.Fatalf("update with unchanged unique fields should succeed: %v", err)
		}
		u.Email = "a@example.com"
		if err := r.users.Update(ctx, u); !errors.Is(err, repository.ErrDuplicateEmail) {
			t.Fatalf("expected ErrDuplicateEmail, got %v", err)
		}
	})

	t.Run("updates on missing rows", func(t *testing.T) {
		const missing = "7b0c1f8e-2a43-4d4b-9a85-0f3c2b6f2a11"
		if err := r.users.SetAdmin(ctx, missing, true); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("set admin: expected ErrNotFound, got %v", err)
		}
		l := &entity.Listing{ID: missing, Title: "Ghost", Price: 1, MinOrderQty: 1}
		if err := r.listings.Update(ctx, l); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("update listing: expected ErrNotFound, got %v", err)
		}
	})

	t.Run("inquiry for unknown listing", func(t *testing.T) {
		q := &entity.Inquiry{ListingID: "7b0c1f8e-2a43-4d4b-9a85-0f3c2b6f2a11", BuyerName: "B", BuyerPhone: "1", Quantity: 1, Status: entity.InquiryNew}
		if err := r.inquiries.Create(ctx, q); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete listing cascades inquiries", func(t *testing.T) {
		u := r.seller(t, "cascade@example.com", "555")
		l := r.listing(t, u.ID)
		q := r.inquiry(t, l.ID)
		r.inquiry(t, l.ID)

		if err := r.listings.Delete(ctx, l.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := r.inquiries.GetByID(ctx, q.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("inquiry should be gone, got %v", err)
		}
		if left, _ := r.inquiries.ListByListing(ctx, l.ID); len(left) != 0 {
			t.Fatalf("expected no inquiries left, got %d", len(left))
		}
		if err := r.listings.Delete(ctx, l.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("second delete: expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete user cascades", func(t *testing.T) {
		u := r.seller(t, "gone@example.com", "666")
		a := r.listing(t, u.ID)
		b := r.listing(t, u.ID)
		q := r.inquiry(t, a.ID)
		r.inquiry(t, b.ID)

		if err := r.users.Delete(ctx, u.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := r.users.GetByID(ctx, u.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("user should be gone, got %v", err)
		}
		if _, err := r.listings.GetByID(ctx, b.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("listing should be gone, got %v", err)
		}
		if _, err := r.inquiries.GetByID(ctx, q.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("inquiry should be gone, got %v", err)
		}
		if err := r.users.Delete(ctx, u.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("second delete: expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list by seller paginates", func(t *testing.T) {
		u := r.seller(t, "inbox@example.com", "777")
		l := r.listing(t, u.ID)
		for i := 0; i < 15; i++ {
			r.inquiry(t, l.ID)
		}
		other := r.seller(t, "noise@example.com", "888")
		r.inquiry(t, r.listing(t, other.ID).ID)

		page, total, err := r.inquiries.ListBySeller(ctx, repository.SellerInquiryFilter{SellerID: u.ID, Offset: 10, Limit: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if total != 15 || len(page) != 5 {
			t.Fatalf("expected 5 of 15, got %d of %d", len(page), total)
		}

		closed := entity.InquiryClosed
		if _, err := r.inquiries.UpdateStatus(ctx, page[0].ID, closed); err != nil {
			t.Fatalf("update status: %v", err)
		}
		only, total, err := r.inquiries.ListBySeller(ctx, repository.SellerInquiryFilter{SellerID: u.ID, Status: &closed, Limit: 10})
		if err != nil {
			t.Fatalf("list closed: %v", err)
		}
		if total != 1 || len(only) != 1 || only[0].ID != page[0].ID {
			t.Fatalf("expected the closed inquiry only, got %d of %d", len(only), total)
		}
	})
}
