package ports

import (
	"context"

	"github.com/pawshop/storefront/internal/core/domain"
)

// AuthResult is what the backend returns after a successful login or
// registration. AccessToken is empty when the backend answers with a bare
// user record.
type AuthResult struct {
	User        *domain.User
	AccessToken string
	TokenType   string
}

// AuthAPI is the remote identity service.
type AuthAPI interface {
	Register(ctx context.Context, in domain.Registration) (*AuthResult, error)
	Login(ctx context.Context, in domain.Credentials) (*AuthResult, error)
	Logout(ctx context.Context) error
	// CurrentUser returns the identity behind the ambient credential.
	CurrentUser(ctx context.Context) (*domain.User, error)
}

// TokenSource hands the current bearer token to the transport. An empty
// string means no credential.
type TokenSource interface {
	AccessToken() string
}
