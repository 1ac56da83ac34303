package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
	"github.com/oksasatya/marketplace-api/internal/domain/repository"
	"github.com/oksasatya/marketplace-api/pkg/helpers"
)

const originVietnam = "Vietnam"

// TokenIssuer is implemented by helpers.JWTManager.
type TokenIssuer interface {
	Issue(subject string) (string, time.Time, error)
}

type AuthService struct {
	Users      repository.UserRepository
	Tokens     TokenIssuer
	BcryptCost int
	Events     *Events
	Logger     *logrus.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users repository.UserRepository, tokens TokenIssuer, bcryptCost int, events *Events, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Tokens: tokens, BcryptCost: bcryptCost, Events: events, Logger: logger}
}

type RegisterInput struct {
	Name        string
	Email       string
	Phone       string
	Password    string
	IsSeller    bool
	FromVietnam bool
	Country     string
}

// Session is the result of a successful register or login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	u := &entity.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    helpers.NormalizeEmail(in.Email),
		Phone:    helpers.NormalizePhone(in.Phone),
		IsSeller: in.IsSeller,
	}
	fields := map[string]string{}
	required(fields, "name", u.Name)
	required(fields, "email", u.Email)
	required(fields, "phone", u.Phone)
	required(fields, "password", in.Password)
	if err := validationErr(fields); err != nil {
		return nil, err
	}

	if in.FromVietnam {
		u.OriginCountry = originVietnam
	} else {
		u.OriginCountry = strings.TrimSpace(in.Country)
	}

	hash, err := helpers.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return nil, Internal(err)
	}
	u.PasswordHash = hash

	// the unique constraints decide duplicates atomically
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, storeErr(err, "user")
	}
	s.Events.Emit(ctx, EventUserRegistered, map[string]any{
		"user_id":   u.ID,
		"is_seller": u.IsSeller,
		"origin":    u.OriginCountry,
	})
	return s.issue(u)
}

// Login answers every credential mismatch with the same Unauthenticated error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	invalid := Unauthenticated("Invalid email or password")

	u, err := s.Users.GetByEmail(ctx, helpers.NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, Internal(err)
		}
		// burn the same bcrypt work as a real comparison
		helpers.CompareHashAndPassword(s.dummy(), password)
		return nil, invalid
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, invalid
	}
	return s.issue(u)
}

func (s *AuthService) issue(u *entity.User) (*Session, error) {
	tok, exp, err := s.Tokens.Issue(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue token failed")
		}
		return nil, Internal(err)
	}
	return &Session{Token: tok, ExpiresAt: exp, User: u}, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = helpers.HashPassword("invalid-password-placeholder", s.BcryptCost)
	})
	return s.dummyHash
}
