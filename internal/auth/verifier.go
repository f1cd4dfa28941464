package auth

import (
	"context"
	"errors"
)

var ErrInvalidToken = errors.New("invalid identity token")

// IdentityClaims is the verified identity carried by a bearer token.
type IdentityClaims struct {
	UID   string
	Email string
	Name  string
}

// TokenVerifier checks a bearer credential against the identity
// provider and returns the claims it vouches for.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*IdentityClaims, error)
}
