package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Email is stored lowercased and trimmed, Phone trimmed; both are unique.
// PasswordHash holds a bcrypt hash.
type User struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	PasswordHash  string
	OriginCountry string
	IsSeller      bool
	IsAdmin       bool
	CreatedAt     time.Time
}

// UserSummary is the admin console view of a user with its listing count.
type UserSummary struct {
	User          User
	ListingsCount int
}
