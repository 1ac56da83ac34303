package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
	"github.com/oksasatya/marketplace-api/internal/domain/repository"
	"github.com/oksasatya/marketplace-api/pkg/helpers"
)

type ProfileService struct {
	Users      repository.UserRepository
	BcryptCost int
	Events     *Events
	Logger     *logrus.Logger
}

func NewProfileService(users repository.UserRepository, bcryptCost int, events *Events, logger *logrus.Logger) *ProfileService {
	return &ProfileService{Users: users, BcryptCost: bcryptCost, Events: events, Logger: logger}
}

// UpdateProfileInput is a partial update; nil fields are left untouched.
type UpdateProfileInput struct {
	Name            *string
	Email           *string
	Phone           *string
	CurrentPassword *string
	NewPassword     *string
}

func (s *ProfileService) Me(id entity.Identity) (*entity.User, error) {
	if !id.IsAuthenticated() {
		return nil, Unauthenticated("authentication required")
	}
	u := *id.User
	return &u, nil
}

func (s *ProfileService) UpdateMe(ctx context.Context, id entity.Identity, in UpdateProfileInput) (*entity.User, error) {
	cur, err := s.Me(id)
	if err != nil {
		return nil, err
	}
	u := *cur

	fields := map[string]string{}
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
		required(fields, "name", u.Name)
	}
	if in.Email != nil {
		u.Email = helpers.NormalizeEmail(*in.Email)
		required(fields, "email", u.Email)
	}
	if in.Phone != nil {
		u.Phone = helpers.NormalizePhone(*in.Phone)
		required(fields, "phone", u.Phone)
	}
	if in.NewPassword != nil {
		required(fields, "newPassword", *in.NewPassword)
	}
	if err := validationErr(fields); err != nil {
		return nil, err
	}

	if in.NewPassword != nil {
		if in.CurrentPassword == nil || !helpers.CompareHashAndPassword(cur.PasswordHash, *in.CurrentPassword) {
			return nil, Unauthenticated("Current password invalid")
		}
		hash, err := helpers.HashPassword(*in.NewPassword, s.BcryptCost)
		if err != nil {
			return nil, Internal(err)
		}
		u.PasswordHash = hash
	}

	if err := s.Users.Update(ctx, &u); err != nil {
		return nil, storeErr(err, "user")
	}
	return &u, nil
}

// DeleteMe removes the caller together with their listings and those listings' inquiries.
// Inquiries the caller sent as a buyer stay with their listings.
func (s *ProfileService) DeleteMe(ctx context.Context, id entity.Identity) error {
	if !id.IsAuthenticated() {
		return Unauthenticated("authentication required")
	}
	if err := s.Users.Delete(ctx, id.User.ID); err != nil {
		return storeErr(err, "user")
	}
	s.Events.Emit(ctx, EventUserDeleted, map[string]any{"user_id": id.User.ID, "by": "self"})
	return nil
}
