package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of an access token. Tokens are not renewable.
const DefaultTokenTTL = 3600 * time.Second

var (
	ErrMissingSecret = errors.New("jwt: signing secret is not configured")
	ErrInvalidToken  = errors.New("jwt: invalid token")
	ErrTokenExpired  = errors.New("jwt: token expired")
)

// JWTManager issues and verifies HS256 access tokens carrying the user id as subject.
type JWTManager struct {
	secret []byte
	TTL    time.Duration
	now    func() time.Time
}

func NewJWTManager(secret string, ttl time.Duration) (*JWTManager, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTManager{secret: []byte(secret), TTL: ttl, now: time.Now}, nil
}

// WithClock replaces the time source; used by tests.
func (m *JWTManager) WithClock(now func() time.Time) *JWTManager {
	m.now = now
	return m
}

// Issue signs a token for subject that expires TTL from now. Claims carry whole
// seconds, so the returned expiry is truncated to match the exp claim.
func (m *JWTManager) Issue(subject string) (string, time.Time, error) {
	now := m.now().Truncate(time.Second)
	exp := now.Add(m.TTL)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	return s, exp, err
}

// Verify checks signature and expiry and returns the subject.
// Signature problems yield ErrInvalidToken, an elapsed exp yields ErrTokenExpired.
// A token is accepted through the whole second named by exp.
func (m *JWTManager) Verify(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return m.now().Truncate(time.Second) }),
		jwt.WithLeeway(time.Second),
	)
	if err != nil {
		// exp is only evaluated once the signature has been verified
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}
	if !tkn.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
