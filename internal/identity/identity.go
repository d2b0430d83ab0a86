// Package identity adapts external identity providers that own passwords and issue bearer tokens.
package identity

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Credentials are the login details handed to the provider when an account is created.
type Credentials struct {
	Email       string
	Password    string
	DisplayName string
}

// Provider verifies tokens and manages login identities.
type Provider interface {
	// VerifyToken returns the subject identifier the token was issued for.
	VerifyToken(ctx context.Context, token string) (string, error)
	CreateAccount(ctx context.Context, creds Credentials) (string, error)
	DeleteAccount(ctx context.Context, uid string) error
}
