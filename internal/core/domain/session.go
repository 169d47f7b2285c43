package domain

// SessionState is the lifecycle position of the session.
type SessionState string

const (
	StateUninitialized SessionState = "uninitialized"
	StateAnonymous     SessionState = "anonymous"
	StateAuthenticated SessionState = "authenticated"
)

// Session is a read-only view of the client's belief about who is signed in.
// Build it with NewSession so the derived flags can never disagree with User.
type Session struct {
	User            *User
	IsAuthenticated bool
	IsAdmin         bool
	// Initialized is true once the startup verification has run, whatever
	// its outcome.
	Initialized bool
	// Loading is true while a login, register or logout call is in flight.
	Loading bool
	// Provisional marks a user restored from durable state that the backend
	// has not confirmed yet in this process. Role-gated UI must treat it as
	// unverified.
	Provisional bool
}

// NewSession derives every flag from user and the lifecycle bits.
func NewSession(user *User, initialized, loading bool) Session {
	return Session{
		User:            user.Clone(),
		IsAuthenticated: user != nil,
		IsAdmin:         user.IsAdmin(),
		Initialized:     initialized,
		Loading:         loading,
		Provisional:     user != nil && !initialized,
	}
}

// State maps the snapshot onto the session state machine.
func (s Session) State() SessionState {
	switch {
	case !s.Initialized:
		return StateUninitialized
	case s.IsAuthenticated:
		return StateAuthenticated
	default:
		return StateAnonymous
	}
}
