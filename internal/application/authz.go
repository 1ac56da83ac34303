package application

import "github.com/oksasatya/marketplace-api/internal/domain/entity"

// RequireAdmin succeeds only for an authenticated admin.
func RequireAdmin(id entity.Identity) error {
	if !id.IsAuthenticated() || !id.User.IsAdmin {
		return Forbidden("admin only")
	}
	return nil
}

// RequireOwner succeeds only when the caller is the resource owner.
// Admins get no override here; callers compose RequireOwnerOrAdmin for that.
func RequireOwner(id entity.Identity, ownerID string, msg string) error {
	if !id.IsAuthenticated() || id.User.ID != ownerID {
		return Forbidden(msg)
	}
	return nil
}

// RequireOwnerOrAdmin composes both checks explicitly.
func RequireOwnerOrAdmin(id entity.Identity, ownerID string, msg string) error {
	if RequireOwner(id, ownerID, msg) == nil || RequireAdmin(id) == nil {
		return nil
	}
	return Forbidden(msg)
}
