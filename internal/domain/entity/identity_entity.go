package entity

// Identity is the resolved caller of a request: anonymous when User is nil.
type Identity struct {
	User *User
}

// Anonymous is the identity of a caller without a (valid) token.
var Anonymous = Identity{}

func Authenticated(u *User) Identity { return Identity{User: u} }

func (i Identity) IsAuthenticated() bool { return i.User != nil }

// UserID returns the caller's id, or "" when anonymous.
func (i Identity) UserID() string {
	if i.User == nil {
		return ""
	}
	return i.User.ID
}
