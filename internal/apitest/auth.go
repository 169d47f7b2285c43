package apitest

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/pawshop/storefront/internal/apitest/middleware"
	"github.com/pawshop/storefront/internal/core/domain"
)

type registerRequest struct {
	Name                 string `json:"name"                  validate:"required,min=2"`
	WhatsAppNumber       string `json:"whatsapp_number"       validate:"required"`
	Password             string `json:"password"              validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

type loginRequest struct {
	WhatsAppNumber string `json:"whatsapp_number" validate:"required"`
	Password       string `json:"password"        validate:"required"`
}

type authResponse struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
}

// Token issues a valid token for a seeded or registered account, for tests
// that need a credential without going through /login.
func (s *Server) Token(number string, ttl time.Duration) (string, error) {
	s.mu.Lock()
	a := s.data.accountByNumber(number)
	s.mu.Unlock()
	if a == nil {
		return "", fmt.Errorf("apitest: no account %q", number)
	}
	return s.issue(a.user, ttl)
}

// SetRole changes an account's role, as an operator would on the backend.
func (s *Server) SetRole(number string, role domain.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a := s.data.accountByNumber(number); a != nil {
		a.user.Role = role
	}
}

func (s *Server) issue(u domain.User, ttl time.Duration) (string, error) {
	now := s.now()
	claims := middleware.Claims{
		Role: string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
}

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.data.accountByNumber(req.WhatsAppNumber) != nil {
		s.mu.Unlock()
		return fieldInvalid("whatsapp_number", "The whatsapp number has already been taken.")
	}
	now := s.now()
	a := &account{
		user: domain.User{
			ID:             s.data.id(),
			Name:           req.Name,
			WhatsAppNumber: req.WhatsAppNumber,
			Role:           domain.RoleUser,
			CreatedAt:      &now,
		},
		hash: hash,
	}
	s.data.accounts = append(s.data.accounts, a)
	user := a.user
	s.mu.Unlock()

	token, err := s.issue(user, s.ttl)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, authResponse{User: &user, AccessToken: token, TokenType: "Bearer"})
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s.mu.Lock()
	a := s.data.accountByNumber(req.WhatsAppNumber)
	var user domain.User
	var hash []byte
	if a != nil {
		user, hash = a.user, a.hash
	}
	s.mu.Unlock()

	if a == nil || bcrypt.CompareHashAndPassword(hash, []byte(req.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	token, err := s.issue(user, s.ttl)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{User: &user, AccessToken: token, TokenType: "Bearer"})
}

func (s *Server) logout(c echo.Context) error {
	token, _ := c.Get(middleware.KeyToken).(string)

	s.mu.Lock()
	s.revoked[token] = struct{}{}
	s.mu.Unlock()

	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
}

func (s *Server) currentUser(c echo.Context) error {
	id, _ := c.Get(middleware.KeyUserID).(int64)

	s.mu.Lock()
	a := s.data.accountByID(id)
	var user domain.User
	if a != nil {
		user = a.user
	}
	s.mu.Unlock()

	if a == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated.")
	}
	return c.JSON(http.StatusOK, user)
}
