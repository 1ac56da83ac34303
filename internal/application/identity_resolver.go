package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
	"github.com/oksasatya/marketplace-api/internal/domain/repository"
	"github.com/oksasatya/marketplace-api/pkg/helpers"
)

// AuthMode is declared per endpoint.
type AuthMode int

const (
	// AuthNone performs no resolution.
	AuthNone AuthMode = iota
	// AuthOptional degrades every failure to Anonymous.
	AuthOptional
	// AuthRequired rejects missing or invalid tokens with Unauthenticated.
	AuthRequired
)

const (
	CodeExpiredToken = "EXPIRED_TOKEN"
	CodeInvalidToken = "INVALID_TOKEN"
)

// TokenVerifier returns the subject of a valid token.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type IdentityResolver struct {
	Tokens TokenVerifier
	Users  repository.UserRepository
}

func NewIdentityResolver(tokens TokenVerifier, users repository.UserRepository) *IdentityResolver {
	return &IdentityResolver{Tokens: tokens, Users: users}
}

// Resolve turns a raw bearer token (possibly empty) into an Identity.
func (r *IdentityResolver) Resolve(ctx context.Context, token string, mode AuthMode) (entity.Identity, error) {
	if mode == AuthNone {
		return entity.Anonymous, nil
	}
	id, err := r.resolve(ctx, token)
	if err != nil {
		if mode == AuthOptional {
			return entity.Anonymous, nil
		}
		return entity.Anonymous, err
	}
	return id, nil
}

func (r *IdentityResolver) resolve(ctx context.Context, token string) (entity.Identity, error) {
	if token == "" {
		return entity.Anonymous, Unauthenticated("missing bearer token")
	}
	sub, err := r.Tokens.Verify(token)
	if err != nil {
		if errors.Is(err, helpers.ErrTokenExpired) {
			return entity.Anonymous, &Error{Kind: KindUnauthenticated, Message: "token expired", Code: CodeExpiredToken}
		}
		return entity.Anonymous, &Error{Kind: KindUnauthenticated, Message: "invalid token", Code: CodeInvalidToken}
	}
	if _, err := uuid.Parse(sub); err != nil {
		return entity.Anonymous, &Error{Kind: KindUnauthenticated, Message: "invalid token", Code: CodeInvalidToken}
	}
	u, err := r.Users.GetByID(ctx, sub)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.Anonymous, Unauthenticated("user no longer exists")
		}
		return entity.Anonymous, Internal(err)
	}
	return entity.Authenticated(u), nil
}
