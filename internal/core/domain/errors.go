package domain

import (
	"errors"
	"sort"
	"strings"
)

// Kind classifies a failure so the UI can decide between "fix your input"
// and "try again".
type Kind string

const (
	KindValidation         Kind = "validation"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindDuplicateAccount   Kind = "duplicate_account"
	KindForbidden          Kind = "forbidden"
	KindNetwork            Kind = "network"
	KindNotFound           Kind = "not_found"
	KindUnauthenticated    Kind = "unauthenticated"
	KindServer             Kind = "server"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrForbidden          = errors.New("access forbidden")
	ErrNetwork            = errors.New("could not reach the server")
	ErrNotFound           = errors.New("not found")
	ErrUnauthenticated    = errors.New("please login to continue")
	ErrServer             = errors.New("unexpected server error")
)

var kindSentinels = map[Kind]error{
	KindValidation:         ErrValidation,
	KindInvalidCredentials: ErrInvalidCredentials,
	KindDuplicateAccount:   ErrDuplicateAccount,
	KindForbidden:          ErrForbidden,
	KindNetwork:            ErrNetwork,
	KindNotFound:           ErrNotFound,
	KindUnauthenticated:    ErrUnauthenticated,
	KindServer:             ErrServer,
}

// Error is the typed failure every store and adapter returns. It matches the
// sentinel of its Kind under errors.Is and keeps the underlying cause (for
// example a *url.Error) reachable through errors.As.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field messages for validation failures, keyed by the
	// wire name of the field.
	Fields map[string]string
	// Status is the HTTP status that produced the error, 0 when none did.
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if s, ok := kindSentinels[e.Kind]; ok {
		return s.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s, ok := kindSentinels[e.Kind]; ok {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewError builds an Error of the given kind with a display message.
func NewError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// NewValidationError builds a validation failure from per-field messages.
// The display message joins them in field order so it is stable.
func NewValidationError(fields map[string]string) *Error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fields[k])
	}

	return &Error{
		Kind:    KindValidation,
		Message: strings.Join(msgs, "; "),
		Fields:  fields,
	}
}

// KindOf returns the Kind of err, or "" when err carries no *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
