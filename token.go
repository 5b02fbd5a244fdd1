package signup

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer mints the access token returned on successful registration:
// an HS256 JWT carrying the account id as subject, bounded by a fixed
// time-to-live. The signing secret is read-only after construction.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer refuses an empty secret. A token signed with no key
// would look usable and verify nowhere, so misconfiguration has to fail
// here rather than at issuance.
func NewTokenIssuer(secret []byte, ttl time.Duration) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("token issuer: signing secret is empty")
	}
	if ttl <= 0 {
		return nil, errors.New("token issuer: ttl must be positive")
	}
	return &TokenIssuer{secret: secret, ttl: ttl}, nil
}

func (t *TokenIssuer) Issue(id ID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   string(id),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}
	return signed, nil
}
