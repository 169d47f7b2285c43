package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pawshop/storefront/internal/core/domain"
	"github.com/pawshop/storefront/internal/core/ports"
	"github.com/pawshop/storefront/internal/infrastructure/metrics"
	"github.com/pawshop/storefront/internal/validation"
)

// SessionManager owns the authentication lifecycle: who is signed in and
// with which role. One instance per process, built by the application root
// and handed to whatever needs it.
//
// Login, Register, Logout and CheckAuth are serialised: at most one of them
// talks to the backend at a time, so overlapping calls cannot interleave a
// half-applied user with stale flags. A Logout that cannot wait for its turn
// (cancelled ctx) still wins: any sign-in already in flight is discarded.
type SessionManager struct {
	api       ports.AuthAPI
	store     ports.StateStore
	cred      *Credential
	validator *validation.Validator
	log       zerolog.Logger
	now       func() time.Time

	// sem is the in-flight guard for remote operations.
	sem chan struct{}

	// commitMu orders a state change with its persistence. Taken before mu.
	commitMu sync.Mutex

	mu      sync.Mutex
	user    *domain.User
	initd   bool
	loading bool
	// gen is bumped by Logout. A remote result obtained under an older
	// generation is discarded.
	gen uint64

	listeners observers[domain.Session]
}

// persistedSession is what survives a restart. Only the user is kept; every
// flag is recomputed from it.
type persistedSession struct {
	User *domain.User `json:"user"`
}

func NewSessionManager(
	api ports.AuthAPI,
	store ports.StateStore,
	cred *Credential,
	v *validation.Validator,
	log zerolog.Logger,
) *SessionManager {
	return &SessionManager{
		api:       api,
		store:     store,
		cred:      cred,
		validator: v,
		log:       log.With().Str("component", "session").Logger(),
		now:       time.Now,
		sem:       make(chan struct{}, 1),
	}
}

// Snapshot returns the current session view.
func (s *SessionManager) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.NewSession(s.user, s.initd, s.loading)
}

// State returns the position in the session state machine.
func (s *SessionManager) State() domain.SessionState {
	return s.Snapshot().State()
}

// Subscribe registers fn to be called with a fresh snapshot after every
// change. The returned function removes the subscription.
func (s *SessionManager) Subscribe(fn func(domain.Session)) func() {
	return s.listeners.add(fn)
}

// Restore rehydrates the provisional user and the bearer token from durable
// state. It must run before CheckAuth; once the session is initialised it is
// a no-op. A JWT whose exp has passed is discarded here, so the following
// CheckAuth settles on anonymous without asking the backend.
func (s *SessionManager) Restore(ctx context.Context) error {
	if s.Snapshot().Initialized {
		return nil
	}

	var errs []error

	var ps persistedSession
	if _, err := loadJSON(ctx, s.store, SessionStateKey, &ps); err != nil {
		errs = append(errs, err)
	}

	var tok storedToken
	if _, err := loadJSON(ctx, s.store, TokenStateKey, &tok); err != nil {
		errs = append(errs, err)
	}
	if tok.AccessToken != "" && tokenExpired(tok.AccessToken, s.now()) {
		s.log.Info().Msg("stored access token expired, discarding")
		tok.AccessToken = ""
		if err := deleteKey(ctx, s.store, TokenStateKey); err != nil {
			errs = append(errs, err)
		}
	}

	s.mu.Lock()
	if s.initd {
		s.mu.Unlock()
		return errors.Join(errs...)
	}
	s.user = ps.User
	s.cred.set(tok.AccessToken)
	snap := domain.NewSession(s.user, s.initd, s.loading)
	s.mu.Unlock()

	if snap.User != nil {
		s.log.Debug().Int64("user_id", snap.User.ID).Msg("provisional user restored")
	}
	s.listeners.notify(snap)

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	return nil
}

// Login validates the credentials locally, then signs in. On failure the
// previous session is left exactly as it was.
func (s *SessionManager) Login(ctx context.Context, in domain.Credentials) (domain.Session, error) {
	if err := s.validator.Validate(validation.LoginForm{
		WhatsAppNumber: in.WhatsAppNumber,
		Password:       in.Password,
	}); err != nil {
		return s.Snapshot(), fmt.Errorf("login: %w", err)
	}

	if err := s.acquire(ctx); err != nil {
		return s.Snapshot(), fmt.Errorf("login: %w", err)
	}
	defer s.release()

	gen := s.setLoading(true)
	res, err := s.api.Login(ctx, in)
	if err != nil {
		s.setLoading(false)
		s.log.Debug().Err(err).Str("kind", string(domain.KindOf(err))).Msg("login failed")
		return s.Snapshot(), fmt.Errorf("login: %w", err)
	}
	return s.authenticate(ctx, res, "login", gen)
}

// Register validates the form locally, creates the account and signs in as it.
func (s *SessionManager) Register(ctx context.Context, in domain.Registration) (domain.Session, error) {
	if err := s.validator.Validate(validation.RegisterForm{
		Name:                 in.Name,
		WhatsAppNumber:       in.WhatsAppNumber,
		Password:             in.Password,
		PasswordConfirmation: in.PasswordConfirmation,
	}); err != nil {
		return s.Snapshot(), fmt.Errorf("register: %w", err)
	}

	if err := s.acquire(ctx); err != nil {
		return s.Snapshot(), fmt.Errorf("register: %w", err)
	}
	defer s.release()

	gen := s.setLoading(true)
	res, err := s.api.Register(ctx, in)
	if err != nil {
		s.setLoading(false)
		s.log.Debug().Err(err).Str("kind", string(domain.KindOf(err))).Msg("register failed")
		return s.Snapshot(), fmt.Errorf("register: %w", err)
	}
	return s.authenticate(ctx, res, "register", gen)
}

// authenticate applies a successful login or registration. The backend has
// just vouched for the user, so the session counts as initialised. If a
// logout ran since the request started (generation gen), the result is
// dropped and the session stays signed out.
func (s *SessionManager) authenticate(ctx context.Context, res *ports.AuthResult, cause string, gen uint64) (domain.Session, error) {
	if res == nil || res.User == nil {
		s.setLoading(false)
		return s.Snapshot(), fmt.Errorf("%s: %w", cause, domain.NewError(domain.KindServer, "server returned no user"))
	}
	if res.AccessToken == "" {
		s.log.Warn().Str("cause", cause).Msg("backend returned no access token, later calls will be anonymous")
	}

	s.commitMu.Lock()
	s.mu.Lock()
	if s.gen != gen {
		s.loading = false
		s.mu.Unlock()
		s.commitMu.Unlock()
		s.log.Info().Str("cause", cause).Msg("signed out while signing in, discarding result")
		return s.Snapshot(), fmt.Errorf("%s: %w", cause, domain.NewError(domain.KindUnauthenticated, "signed out before sign-in completed"))
	}
	s.user = res.User.Clone()
	s.initd = true
	s.loading = false
	s.cred.set(res.AccessToken)
	snap := domain.NewSession(s.user, s.initd, s.loading)
	s.mu.Unlock()

	s.persistToken(ctx, storedToken{AccessToken: res.AccessToken, TokenType: res.TokenType})
	s.persistUser(ctx, snap.User)
	s.commitMu.Unlock()

	metrics.SessionTransitionsTotal.WithLabelValues(string(domain.StateAuthenticated), cause).Inc()
	s.log.Info().
		Int64("user_id", snap.User.ID).
		Str("role", string(snap.User.Role)).
		Str("cause", cause).
		Msg("signed in")

	s.listeners.notify(snap)
	return snap, nil
}

// Logout signs out. Local state is always cleared; a failing remote call is
// logged and otherwise ignored.
func (s *SessionManager) Logout(ctx context.Context) {
	acquired := s.acquire(ctx) == nil
	if acquired {
		defer s.release()
	}

	s.setLoading(true)
	if err := s.api.Logout(ctx); err != nil {
		s.log.Warn().Err(err).Msg("remote logout failed, clearing local session anyway")
	}

	s.commitMu.Lock()
	s.mu.Lock()
	s.user = nil
	s.initd = true
	s.loading = false
	s.gen++
	s.cred.set("")
	snap := domain.NewSession(nil, s.initd, s.loading)
	s.mu.Unlock()

	// The remote call may have consumed ctx; the local clear must still land.
	persistCtx := context.WithoutCancel(ctx)
	s.persistUser(persistCtx, nil)
	if err := deleteKey(persistCtx, s.store, TokenStateKey); err != nil {
		s.log.Warn().Err(err).Msg("failed to drop stored access token")
	}
	s.commitMu.Unlock()

	metrics.SessionTransitionsTotal.WithLabelValues(string(domain.StateAnonymous), "logout").Inc()
	s.log.Info().Msg("signed out")
	s.listeners.notify(snap)
}

// CheckAuth asks the backend who the ambient credential belongs to. It runs
// at most once per process: concurrent and later calls wait for or skip the
// first run. A rejected or missing credential settles the session on
// anonymous without surfacing an error. The only error returned is ctx's,
// when the caller gave up before the verification finished; the session
// then stays uninitialised so the next call retries.
func (s *SessionManager) CheckAuth(ctx context.Context) error {
	if s.Snapshot().Initialized {
		return nil
	}

	if err := s.acquire(ctx); err != nil {
		return fmt.Errorf("check auth: %w", err)
	}
	defer s.release()

	if s.Snapshot().Initialized {
		return nil
	}

	if s.cred.AccessToken() == "" {
		s.log.Debug().Msg("no credential, session is anonymous")
		s.settleAnonymous(ctx)
		return nil
	}

	gen := s.generation()
	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("check auth: %w", ctxErr)
		}
		switch domain.KindOf(err) {
		case domain.KindUnauthenticated, domain.KindInvalidCredentials:
			s.log.Info().Msg("stored credential rejected, session is anonymous")
			s.cred.set("")
			if delErr := deleteKey(ctx, s.store, TokenStateKey); delErr != nil {
				s.log.Warn().Err(delErr).Msg("failed to drop stored access token")
			}
		default:
			s.log.Warn().Err(err).Msg("session verification failed, treating as anonymous")
		}
		s.settleAnonymous(ctx)
		return nil
	}

	s.commitMu.Lock()
	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		s.commitMu.Unlock()
		s.log.Debug().Msg("signed out during verification, discarding result")
		return nil
	}
	s.user = user.Clone()
	s.initd = true
	snap := domain.NewSession(s.user, s.initd, s.loading)
	s.mu.Unlock()

	s.persistUser(ctx, snap.User)
	s.commitMu.Unlock()
	metrics.SessionTransitionsTotal.WithLabelValues(string(domain.StateAuthenticated), "check_auth").Inc()
	s.log.Debug().Int64("user_id", snap.User.ID).Msg("session verified")
	s.listeners.notify(snap)
	return nil
}

func (s *SessionManager) settleAnonymous(ctx context.Context) {
	s.mu.Lock()
	hadUser := s.user != nil
	s.user = nil
	s.initd = true
	snap := domain.NewSession(nil, s.initd, s.loading)
	s.mu.Unlock()

	if hadUser {
		s.persistUser(ctx, nil)
	}
	metrics.SessionTransitionsTotal.WithLabelValues(string(domain.StateAnonymous), "check_auth").Inc()
	s.listeners.notify(snap)
}

// SetUser replaces the user directly. The derived flags follow in the same
// step because they are computed from the user on every read.
func (s *SessionManager) SetUser(ctx context.Context, user *domain.User) {
	s.mu.Lock()
	s.user = user.Clone()
	snap := domain.NewSession(s.user, s.initd, s.loading)
	s.mu.Unlock()

	s.persistUser(ctx, snap.User)
	metrics.SessionTransitionsTotal.WithLabelValues(string(snap.State()), "set_user").Inc()
	s.listeners.notify(snap)
}

// RequireUser returns the verified signed-in user or a KindUnauthenticated
// error. It runs CheckAuth first, so a provisional identity is never trusted.
func (s *SessionManager) RequireUser(ctx context.Context) (*domain.User, error) {
	if err := s.CheckAuth(ctx); err != nil {
		return nil, err
	}
	snap := s.Snapshot()
	if !snap.IsAuthenticated {
		return nil, domain.NewError(domain.KindUnauthenticated, "please login to access this page")
	}
	return snap.User, nil
}

// RequireAdmin is RequireUser plus the admin role check.
func (s *SessionManager) RequireAdmin(ctx context.Context) (*domain.User, error) {
	user, err := s.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, domain.NewError(domain.KindForbidden, "you do not have permission to access this page")
	}
	return user, nil
}

func (s *SessionManager) persistUser(ctx context.Context, user *domain.User) {
	var err error
	if user == nil {
		err = deleteKey(ctx, s.store, SessionStateKey)
	} else {
		err = saveJSON(ctx, s.store, SessionStateKey, persistedSession{User: user})
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to persist session")
	}
}

func (s *SessionManager) persistToken(ctx context.Context, tok storedToken) {
	var err error
	if tok.AccessToken == "" {
		err = deleteKey(ctx, s.store, TokenStateKey)
	} else {
		err = saveJSON(ctx, s.store, TokenStateKey, tok)
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to persist access token")
	}
}

// setLoading flips the loading flag and returns the generation it saw.
func (s *SessionManager) setLoading(loading bool) uint64 {
	s.mu.Lock()
	s.loading = loading
	gen := s.gen
	snap := domain.NewSession(s.user, s.initd, s.loading)
	s.mu.Unlock()
	s.listeners.notify(snap)
	return gen
}

func (s *SessionManager) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

func (s *SessionManager) acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *SessionManager) release() { <-s.sem }
