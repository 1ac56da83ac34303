package router

import (
	"github.com/oksasatya/marketplace-api/internal/application"
	"github.com/oksasatya/marketplace-api/internal/container"
	"github.com/oksasatya/marketplace-api/internal/domain/repository"
	"github.com/oksasatya/marketplace-api/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/marketplace-api/internal/infrastructure/postgres"
	"github.com/oksasatya/marketplace-api/internal/infrastructure/storage"
	handlers "github.com/oksasatya/marketplace-api/internal/interface/http"
	"github.com/oksasatya/marketplace-api/internal/interface/middleware"
	"github.com/oksasatya/marketplace-api/internal/router/modules"
	"github.com/oksasatya/marketplace-api/pkg/helpers"
)

type Repositories struct {
	Users     repository.UserRepository
	Listings  repository.ListingRepository
	Inquiries repository.InquiryRepository
	Contacts  repository.ContactRepository
	News      repository.NewsRepository
}

// buildRepositories serves Postgres when a pool is wired, the in-memory store otherwise.
func buildRepositories() Repositories {
	if pool := container.GetPGPool(); pool != nil {
		return Repositories{
			Users:     pginfra.NewUserRepository(pool),
			Listings:  pginfra.NewListingRepository(pool),
			Inquiries: pginfra.NewInquiryRepository(pool),
			Contacts:  pginfra.NewContactRepository(pool),
			News:      pginfra.NewNewsRepository(pool),
		}
	}
	store := container.GetMemoryStore()
	if store == nil {
		store = memory.NewStore()
		container.SetMemoryStore(store)
	}
	return Repositories{
		Users:     store.Users(),
		Listings:  store.Listings(),
		Inquiries: store.Inquiries(),
		Contacts:  store.Contacts(),
		News:      store.News(),
	}
}

// optional collaborators are passed as untyped nil interfaces when absent

func buildEvents() *application.Events {
	var pub application.EventPublisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}
	return application.NewEvents(pub, container.GetLogger())
}

func buildCache() application.Cache {
	if rdb := container.GetRedis(); rdb != nil {
		return helpers.NewRedisCache(rdb)
	}
	return nil
}

// buildFileStore returns the upload backend and, for local disk, the directory to serve.
func buildFileStore() (application.FileStore, string) {
	cfg := container.GetConfig()
	if client := container.GetGCS(); client != nil && cfg.GCSBucket != "" {
		return storage.NewGCSStore(client, cfg.GCSBucket), ""
	}
	return storage.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL), cfg.UploadDir
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	repos := buildRepositories()
	events := buildEvents()

	resolver := application.NewIdentityResolver(container.GetJWT(), repos.Users)
	access := modules.Access{
		Optional: middleware.Auth(resolver, application.AuthOptional, logger),
		Required: middleware.Auth(resolver, application.AuthRequired, logger),
		Admin:    middleware.RequireAdmin(logger),
	}

	authSvc := application.NewAuthService(repos.Users, container.GetJWT(), cfg.BcryptCost, events, logger)
	profileSvc := application.NewProfileService(repos.Users, cfg.BcryptCost, events, logger)
	listingSvc := application.NewListingService(repos.Listings, repos.Users, events, logger)
	inquirySvc := application.NewInquiryService(repos.Inquiries, repos.Listings, events, logger)
	contactSvc := application.NewContactService(repos.Contacts, events, logger)
	newsSvc := application.NewNewsService(repos.News, buildCache(), cfg.NewsCacheTTL, logger)
	adminSvc := application.NewAdminService(repos.Users, repos.Listings, cfg.BcryptCost, events, logger)

	fileStore, uploadDir := buildFileStore()
	uploadSvc := application.NewUploadService(fileStore, logger)
	if uploadDir != "" {
		r.Engine.Static("/uploads", uploadDir)
	}

	r.Add(
		modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)),
		modules.NewProfileModule(handlers.NewProfileHandler(profileSvc, logger), access),
		modules.NewListingModule(handlers.NewListingHandler(listingSvc, logger), access),
		modules.NewInquiryModule(handlers.NewInquiryHandler(inquirySvc, logger), access),
		modules.NewContactModule(handlers.NewContactHandler(contactSvc, logger), access),
		modules.NewNewsModule(handlers.NewNewsHandler(newsSvc, logger), access),
		modules.NewAdminModule(handlers.NewAdminHandler(adminSvc, logger), access),
		modules.NewUploadModule(handlers.NewUploadHandler(uploadSvc, logger), access),
	)
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
