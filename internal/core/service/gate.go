package service

import (
	"context"

	"github.com/pawshop/storefront/internal/core/domain"
)

// Gatekeeper is the slice of SessionManager that role-gated services need.
type Gatekeeper interface {
	RequireUser(ctx context.Context) (*domain.User, error)
	RequireAdmin(ctx context.Context) (*domain.User, error)
}

var _ Gatekeeper = (*SessionManager)(nil)
