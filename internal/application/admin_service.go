package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
	"github.com/oksasatya/marketplace-api/internal/domain/repository"
	"github.com/oksasatya/marketplace-api/pkg/helpers"
)

const defaultUserPageSize = 20

type AdminService struct {
	Users      repository.UserRepository
	Listings   repository.ListingRepository
	BcryptCost int
	Events     *Events
	Logger     *logrus.Logger
}

func NewAdminService(users repository.UserRepository, listings repository.ListingRepository, bcryptCost int, events *Events, logger *logrus.Logger) *AdminService {
	return &AdminService{Users: users, Listings: listings, BcryptCost: bcryptCost, Events: events, Logger: logger}
}

type Stats struct {
	Users    int `json:"users"`
	Sellers  int `json:"sellers"`
	Listings int `json:"listings"`
}

type UserQuery struct {
	Role   string
	Search string
	Page   int
	Limit  int
}

type CreateAdminInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

func (s *AdminService) Stats(ctx context.Context, id entity.Identity) (*Stats, error) {
	if err := RequireAdmin(id); err != nil {
		return nil, err
	}
	var st Stats
	var err error
	if st.Users, err = s.Users.Count(ctx); err != nil {
		return nil, Internal(err)
	}
	if st.Sellers, err = s.Users.CountSellers(ctx); err != nil {
		return nil, Internal(err)
	}
	if st.Listings, err = s.Listings.Count(ctx); err != nil {
		return nil, Internal(err)
	}
	return &st, nil
}

// ListUsers pages through users; listing counts come from a second query over the page.
func (s *AdminService) ListUsers(ctx context.Context, id entity.Identity, q UserQuery) ([]entity.UserSummary, error) {
	if err := RequireAdmin(id); err != nil {
		return nil, err
	}
	page, limit := ClampPage(q.Page, q.Limit, defaultUserPageSize, maxPageSize)
	f := repository.UserFilter{Search: q.Search, Offset: offset(page, limit), Limit: limit}
	switch role := strings.ToLower(strings.TrimSpace(q.Role)); role {
	case "seller", "buyer":
		f.Role = role
	}

	users, err := s.Users.List(ctx, f)
	if err != nil {
		return nil, Internal(err)
	}
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	counts, err := s.Listings.CountBySellers(ctx, ids)
	if err != nil {
		return nil, Internal(err)
	}
	out := make([]entity.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, entity.UserSummary{User: u, ListingsCount: counts[u.ID]})
	}
	return out, nil
}

// DeleteUserListings removes every listing of the user together with their inquiries.
func (s *AdminService) DeleteUserListings(ctx context.Context, id entity.Identity, userID string) error {
	if err := RequireAdmin(id); err != nil {
		return err
	}
	uid, err := parseID(userID, "user")
	if err != nil {
		return err
	}
	n, err := s.Listings.DeleteBySeller(ctx, uid)
	if err != nil {
		return Internal(err)
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", uid).WithField("admin_id", id.UserID()).WithField("deleted", n).Info("seller listings deleted")
	}
	return nil
}

func (s *AdminService) DeleteUser(ctx context.Context, id entity.Identity, userID string) error {
	if err := RequireAdmin(id); err != nil {
		return err
	}
	uid, err := parseID(userID, "user")
	if err != nil {
		return err
	}
	if err := s.Users.Delete(ctx, uid); err != nil {
		return storeErr(err, "user")
	}
	s.Events.Emit(ctx, EventUserDeleted, map[string]any{"user_id": uid, "by": id.UserID()})
	return nil
}

func (s *AdminService) SetAdmin(ctx context.Context, id entity.Identity, userID string, isAdmin bool) error {
	if err := RequireAdmin(id); err != nil {
		return err
	}
	uid, err := parseID(userID, "user")
	if err != nil {
		return err
	}
	if err := s.Users.SetAdmin(ctx, uid, isAdmin); err != nil {
		return storeErr(err, "user")
	}
	return nil
}

func (s *AdminService) CreateAdmin(ctx context.Context, id entity.Identity, in CreateAdminInput) (*entity.User, error) {
	if err := RequireAdmin(id); err != nil {
		return nil, err
	}
	return s.createAdmin(ctx, in)
}

// EnsureAdmin creates the admin account unless the email is already registered.
// It bypasses the gate and serves the bootstrap seeder.
func (s *AdminService) EnsureAdmin(ctx context.Context, in CreateAdminInput) (*entity.User, bool, error) {
	if u, err := s.Users.GetByEmail(ctx, helpers.NormalizeEmail(in.Email)); err == nil {
		return u, false, nil
	}
	u, err := s.createAdmin(ctx, in)
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

func (s *AdminService) createAdmin(ctx context.Context, in CreateAdminInput) (*entity.User, error) {
	u := &entity.User{
		Name:    strings.TrimSpace(in.Name),
		Email:   helpers.NormalizeEmail(in.Email),
		Phone:   helpers.NormalizePhone(in.Phone),
		IsAdmin: true,
	}
	fields := map[string]string{}
	required(fields, "name", u.Name)
	required(fields, "email", u.Email)
	required(fields, "phone", u.Phone)
	required(fields, "password", in.Password)
	if err := validationErr(fields); err != nil {
		return nil, err
	}
	hash, err := helpers.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return nil, Internal(err)
	}
	u.PasswordHash = hash
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, storeErr(err, "user")
	}
	return u, nil
}
