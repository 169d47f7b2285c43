// Package apitest runs an in-process fake of the storefront backend for
// integration tests of the REST client. It speaks the same routes, auth
// scheme and error envelopes as the real service, keeps everything in
// memory and records what it was asked.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/pawshop/storefront/internal/apitest/middleware"
	"github.com/pawshop/storefront/internal/core/domain"
)

const apiPrefix = "/api"

// Server is a running fake backend.
type Server struct {
	http   *httptest.Server
	secret string
	ttl    time.Duration
	now    func() time.Time

	mu       sync.Mutex
	data     *catalog
	calls    map[string]int
	headers  map[string]http.Header
	failures map[string]int
	revoked  map[string]struct{}
}

type Option func(*Server)

// WithTokenTTL sets the lifetime of issued tokens.
func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) { s.ttl = d }
}

// Start launches a fake backend seeded with the default catalogue and
// accounts. It is shut down when the test ends.
func Start(t testing.TB, opts ...Option) *Server {
	t.Helper()

	s := &Server{
		secret:   "apitest-secret",
		ttl:      time.Hour,
		now:      time.Now,
		calls:    make(map[string]int),
		headers:  make(map[string]http.Header),
		failures: make(map[string]int),
		revoked:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := seed()
	if err != nil {
		t.Fatalf("apitest: seed: %v", err)
	}
	s.data = data

	s.http = httptest.NewServer(s.router())
	t.Cleanup(s.http.Close)
	return s
}

// BaseURL is the API root to configure the client with.
func (s *Server) BaseURL() string { return s.http.URL + apiPrefix }

// Close stops the server early, so tests can observe transport failures.
func (s *Server) Close() { s.http.Close() }

// Calls reports how many requests reached path (relative to the API root,
// e.g. "/user"), failed ones included.
func (s *Server) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

// LastHeader returns the request headers of the latest call to path.
func (s *Server) LastHeader(path string) http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.headers[path]
}

// Fail makes every later call to path answer with status. Zero clears it.
func (s *Server) Fail(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, path)
		return
	}
	s.failures[path] = status
}

func (s *Server) router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newValidator()
	e.HTTPErrorHandler = newHTTPErrorHandler(zerolog.Nop())

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	api := e.Group(apiPrefix, s.record)
	auth := middleware.Auth(s.secret, s.isRevoked)

	api.POST("/register", s.register)
	api.POST("/login", s.login)
	api.POST("/logout", s.logout, auth)
	api.GET("/user", s.currentUser, auth)

	api.GET("/pets", s.listPets)
	api.GET("/pets/:id", s.getPet)
	api.GET("/products", s.listProducts)
	api.GET("/products/:id", s.getProduct)
	api.GET("/services", s.listServices)
	api.GET("/services/:id", s.getService)
	api.GET("/sliders", s.listSliders)

	api.GET("/bookings", s.listBookings, auth)
	api.POST("/bookings", s.createBooking, auth)

	admin := api.Group("/admin", auth, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/pets", s.listPets)
	admin.POST("/pets", s.createPet)
	admin.POST("/pets/:id", s.updatePet)
	admin.DELETE("/pets/:id", s.deletePet)
	admin.GET("/products", s.listProducts)
	admin.POST("/products", s.createProduct)
	admin.POST("/products/:id", s.updateProduct)
	admin.DELETE("/products/:id", s.deleteProduct)
	admin.GET("/services", s.listServices)
	admin.POST("/services", s.createService)
	admin.PUT("/services/:id", s.updateService)
	admin.DELETE("/services/:id", s.deleteService)
	admin.GET("/sliders", s.listAllSliders)
	admin.POST("/sliders", s.createSlider)
	admin.POST("/sliders/:id", s.updateSlider)
	admin.DELETE("/sliders/:id", s.deleteSlider)
	admin.GET("/bookings", s.listAllBookings)
	admin.PUT("/bookings/:id", s.updateBooking)
	admin.DELETE("/bookings/:id", s.deleteBooking)

	return e
}

// record counts the call, keeps its headers and applies injected failures.
func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := strings.TrimPrefix(c.Request().URL.Path, apiPrefix)

		s.mu.Lock()
		s.calls[path]++
		s.headers[path] = c.Request().Header.Clone()
		status := s.failures[path]
		s.mu.Unlock()

		if status != 0 {
			return echo.NewHTTPError(status, http.StatusText(status))
		}
		return next(c)
	}
}

func (s *Server) isRevoked(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[token]
	return ok
}
