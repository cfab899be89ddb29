package jwtmw

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"calorie_backend/internal/feature/users/domain/entity"
)

// ErrInvalidToken is returned when a bearer token fails signature or expiry
// checks, or when its subject no longer resolves to a user.
var ErrInvalidToken = errors.New("invalid token")

// placeholderCredential is substituted when the Authorization header has no
// second field. It can never carry a valid signature, so a malformed header
// fails verification instead of crashing.
const placeholderCredential = "asdf"

// UserLookup resolves a token subject to a stored user.
// Following Go convention: interfaces are defined by the consumer (verifier), not the provider (adapters).
type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// Identity is the authenticated identity attached to a request after a
// successful verification.
type Identity struct {
	Username string
}

// Verifier validates bearer tokens against the process-wide signing secret
// and resolves their subject through the user store.
type Verifier struct {
	secret []byte
	users  UserLookup
}

// NewVerifier creates a Verifier with the provided secret and user lookup.
func NewVerifier(secret string, users UserLookup) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		users:  users,
	}
}

// Verify takes the full Authorization header value, extracts the credential
// (second whitespace-separated field) and validates signature and expiry.
// On success the token subject is looked up in the user store and the
// resolved identity is returned.
func (v *Verifier) Verify(ctx context.Context, rawHeader string) (Identity, error) {
	credential := placeholderCredential
	if fields := strings.Fields(rawHeader); len(fields) >= 2 {
		credential = fields[1]
	}

	token, err := jwt.Parse(credential, func(t *jwt.Token) (interface{}, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	sub, ok := claims["sub"].(float64) // JWT numbers are decoded as float64
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	user, err := v.users.FindByID(ctx, uint(sub))
	if err != nil {
		// A token whose subject no longer exists is as good as invalid.
		return Identity{}, ErrInvalidToken
	}

	return Identity{Username: user.Username}, nil
}
