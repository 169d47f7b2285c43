package domain

import (
	"errors"
	"fmt"
	"net/url"
	"testing"
)

func TestError_MatchesKindSentinel(t *testing.T) {
	err := fmt.Errorf("login: %w", &Error{Kind: KindInvalidCredentials, Message: "wrong number or password"})

	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected errors.Is to match ErrInvalidCredentials")
	}
	if errors.Is(err, ErrNetwork) {
		t.Fatalf("credential failure must not look like a network failure")
	}
	if KindOf(err) != KindInvalidCredentials {
		t.Fatalf("unexpected kind: %s", KindOf(err))
	}
	if err.Error() != "login: wrong number or password" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestError_KeepsTransportCause(t *testing.T) {
	cause := &url.Error{Op: "Post", URL: "http://shop/api/login", Err: errors.New("connection refused")}
	err := &Error{Kind: KindNetwork, Err: cause}

	var ue *url.Error
	if !errors.As(err, &ue) {
		t.Fatalf("expected *url.Error to be reachable")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Fatalf("expected default message, got %q", err.Error())
	}
}

func TestNewValidationError_StableMessage(t *testing.T) {
	err := NewValidationError(map[string]string{
		"password":        "password must be at least 6 characters",
		"whatsapp_number": "whatsapp number is required",
	})

	want := "password must be at least 6 characters; whatsapp number is required"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation")
	}
}

func TestKindOf_PlainError(t *testing.T) {
	if KindOf(errors.New("boom")) != "" {
		t.Fatalf("plain errors carry no kind")
	}
}
