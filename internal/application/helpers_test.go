package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
	"github.com/oksasatya/marketplace-api/internal/infrastructure/memory"
	"github.com/oksasatya/marketplace-api/pkg/helpers"
)

const testCost = 4

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

type fixture struct {
	store    *memory.Store
	pub      *recordingPublisher
	jwt      *helpers.JWTManager
	auth     *AuthService
	profile  *ProfileService
	listings *ListingService
	inq      *InquiryService
	contacts *ContactService
	news     *NewsService
	admin    *AdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	pub := &recordingPublisher{}
	logger := helpers.NewDiscardLogger()
	events := NewEvents(pub, logger)
	jwt, err := helpers.NewJWTManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("jwt: %v", err)
	}
	return &fixture{
		store:    store,
		pub:      pub,
		jwt:      jwt,
		auth:     NewAuthService(store.Users(), jwt, testCost, events, logger),
		profile:  NewProfileService(store.Users(), testCost, events, logger),
		listings: NewListingService(store.Listings(), store.Users(), events, logger),
		inq:      NewInquiryService(store.Inquiries(), store.Listings(), events, logger),
		contacts: NewContactService(store.Contacts(), events, logger),
		news:     NewNewsService(store.News(), nil, time.Minute, logger),
		admin:    NewAdminService(store.Users(), store.Listings(), testCost, events, logger),
	}
}

// register creates an account and returns its resolved identity.
func (f *fixture) register(t *testing.T, name, email, phone string, seller bool) entity.Identity {
	t.Helper()
	s, err := f.auth.Register(context.Background(), RegisterInput{
		Name: name, Email: email, Phone: phone, Password: "password123", IsSeller: seller,
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return entity.Authenticated(s.User)
}

func (f *fixture) adminIdentity(t *testing.T) entity.Identity {
	t.Helper()
	u, _, err := f.admin.EnsureAdmin(context.Background(), CreateAdminInput{
		Name: "Admin", Email: "admin@example.com", Phone: "+10000000000", Password: "password123",
	})
	if err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	return entity.Authenticated(u)
}

func (f *fixture) listing(t *testing.T, seller entity.Identity) *entity.Listing {
	t.Helper()
	l, err := f.listings.Create(context.Background(), seller, CreateListingInput{
		Title: "Rice", Price: 10, MinOrderQty: 1, Stock: 5,
	})
	if err != nil {
		t.Fatalf("create listing: %v", err)
	}
	return l
}

func assertKind(t *testing.T, err error, want Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	var ae *Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if ae.Kind != want {
		t.Fatalf("expected kind %s, got %s (%v)", want, ae.Kind, err)
	}
}

func anonymous() entity.Identity { return entity.Anonymous }

func identityOf(s *Session) entity.Identity { return entity.Authenticated(s.User) }
