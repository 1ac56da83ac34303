package application

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/oksasatya/marketplace-api/internal/domain/repository"
)

// parseID rejects malformed identifiers as not found, so a bad id and an unknown id look the same.
func parseID(id, what string) (string, error) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", NotFound(what + " not found")
	}
	return u.String(), nil
}

// storeErr maps repository sentinels to application errors.
func storeErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return NotFound(what + " not found")
	case errors.Is(err, repository.ErrDuplicateEmail):
		return Conflict("Email already in use", err)
	case errors.Is(err, repository.ErrDuplicatePhone):
		return Conflict("Phone already in use", err)
	default:
		return Internal(err)
	}
}

func required(fields map[string]string, name, value string) {
	if strings.TrimSpace(value) == "" {
		fields[name] = "is required"
	}
}

func validationErr(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return Validation("invalid input", fields)
}
