package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/marketplace-api/config"
	"github.com/oksasatya/marketplace-api/internal/application"
	"github.com/oksasatya/marketplace-api/internal/domain/repository"
	"github.com/oksasatya/marketplace-api/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/marketplace-api/internal/infrastructure/postgres"
	"github.com/oksasatya/marketplace-api/pkg/helpers"
)

// seed creates the first admin account; running it again is a no-op.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	if cfg.SeedAdminPassword == "" {
		log.Fatal("SEED_ADMIN_PASSWORD is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var users repository.UserRepository
	var listings repository.ListingRepository
	if cfg.UseMemoryStore() {
		logger.Warn("STORAGE_DRIVER=memory; the seeded admin only lives for this process")
		store := memory.NewStore()
		users, listings = store.Users(), store.Listings()
	} else {
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		users, listings = pginfra.NewUserRepository(pool), pginfra.NewListingRepository(pool)
	}

	admins := application.NewAdminService(users, listings, cfg.BcryptCost, nil, logger)
	u, created, err := admins.EnsureAdmin(ctx, application.CreateAdminInput{
		Name:     cfg.SeedAdminName,
		Email:    cfg.SeedAdminEmail,
		Phone:    cfg.SeedAdminPhone,
		Password: cfg.SeedAdminPassword,
	})
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	if created {
		logger.Infof("seeded admin: id=%s email=%s", u.ID, u.Email)
		return
	}
	logger.Infof("admin already present: id=%s email=%s", u.ID, u.Email)
}
