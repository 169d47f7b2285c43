package domain

import "time"

// Role is the privilege level the backend assigns to an account.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is the identity record returned by the backend for the signed-in account.
type User struct {
	ID                 int64      `json:"id"`
	Name               string     `json:"name"`
	WhatsAppNumber     string     `json:"whatsapp_number"`
	WhatsAppVerifiedAt *time.Time `json:"whatsapp_verified_at,omitempty"`
	Role               Role       `json:"role"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

// IsAdmin reports whether u carries the admin role. A nil user is never admin.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Clone returns a deep copy so callers cannot mutate a store's user through
// a snapshot.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.WhatsAppVerifiedAt = cloneTime(u.WhatsAppVerifiedAt)
	c.CreatedAt = cloneTime(u.CreatedAt)
	c.UpdatedAt = cloneTime(u.UpdatedAt)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// Credentials is the login payload.
type Credentials struct {
	WhatsAppNumber string `json:"whatsapp_number"`
	Password       string `json:"password"`
}

// Registration is the account creation payload.
type Registration struct {
	Name                 string `json:"name"`
	WhatsAppNumber       string `json:"whatsapp_number"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}
