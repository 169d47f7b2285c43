package apitest

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func post(t *testing.T, s *Server, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(s.BaseURL()+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", path, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("invalid json from %s: %v", path, err)
	}
	return resp, out
}

func get(t *testing.T, s *Server, path string) int {
	t.Helper()
	resp, err := http.Get(s.BaseURL() + path)
	if err != nil {
		t.Fatalf("get %s: %v", path, err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

// --- login ---

func TestServer_Login_Success(t *testing.T) {
	s := Start(t)

	resp, body := post(t, s, "/login", `{"whatsapp_number":"`+AdminNumber+`","password":"`+AdminPassword+`"}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["access_token"] == "" || body["token_type"] != "Bearer" {
		t.Fatalf("unexpected token payload: %+v", body)
	}
	user, ok := body["user"].(map[string]any)
	if !ok || user["role"] != "admin" {
		t.Fatalf("unexpected user payload: %+v", body["user"])
	}
	if s.Calls("/login") != 1 {
		t.Fatalf("expected one recorded call, got %d", s.Calls("/login"))
	}
}

func TestServer_Login_WrongPassword(t *testing.T) {
	s := Start(t)

	resp, body := post(t, s, "/login", `{"whatsapp_number":"`+CustomerNumber+`","password":"nope"}`)

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if body["message"] != "Invalid credentials" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

// --- register ---

func TestServer_Register_ValidationEnvelope(t *testing.T) {
	s := Start(t)

	resp, body := post(t, s, "/register", `{"name":"B","whatsapp_number":"","password":"123","password_confirmation":"321"}`)

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	errs, ok := body["errors"].(map[string]any)
	if !ok {
		t.Fatalf("expected errors object, got %+v", body)
	}
	for _, field := range []string{"name", "whatsapp_number", "password", "password_confirmation"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected error for %s, got %+v", field, errs)
		}
	}
}

func TestServer_Register_TakenNumber(t *testing.T) {
	s := Start(t)

	resp, body := post(t, s, "/register",
		`{"name":"Sari","whatsapp_number":"`+CustomerNumber+`","password":"secret1","password_confirmation":"secret1"}`)

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	errs, _ := body["errors"].(map[string]any)
	if _, ok := errs["whatsapp_number"]; !ok {
		t.Fatalf("expected whatsapp_number error, got %+v", body)
	}
}

// --- routing ---

func TestServer_FailInjection(t *testing.T) {
	s := Start(t)
	s.Fail("/pets", http.StatusServiceUnavailable)

	if code := get(t, s, "/pets"); code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}

	s.Fail("/pets", 0)
	if code := get(t, s, "/pets"); code != http.StatusOK {
		t.Fatalf("expected 200 after clearing, got %d", code)
	}
}

func TestServer_AdminRequiresToken(t *testing.T) {
	s := Start(t)

	if code := get(t, s, "/admin/pets"); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}
