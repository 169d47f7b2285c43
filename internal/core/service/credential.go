package service

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Credential holds the bearer token. The session manager is its only writer;
// the API client reads it through ports.TokenSource on every request.
type Credential struct {
	mu    sync.RWMutex
	token string
}

func NewCredential() *Credential {
	return &Credential{}
}

// AccessToken implements ports.TokenSource.
func (c *Credential) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Credential) set(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// tokenExpired reports whether token is a JWT whose exp claim has passed.
// Opaque tokens (Sanctum's "id|secret" form, for one) cannot be judged
// locally and are reported as live; the backend decides.
func tokenExpired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !claims.ExpiresAt.After(now)
}

// storedToken is the persisted shape of the credential.
type storedToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}
