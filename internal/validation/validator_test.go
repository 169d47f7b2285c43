package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawshop/storefront/internal/core/domain"
)

func fixedClock() time.Time {
	return time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)
}

func fields(t *testing.T, err error) map[string]string {
	t.Helper()
	var de *domain.Error
	require.True(t, errors.As(err, &de), "expected *domain.Error, got %v", err)
	require.Equal(t, domain.KindValidation, de.Kind)
	return de.Fields
}

func TestLoginForm(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(LoginForm{WhatsAppNumber: "081234567890", Password: "secret1"}))

	err := v.Validate(LoginForm{WhatsAppNumber: "0812345678", Password: "short"})
	f := fields(t, err)
	assert.Equal(t, "password must be at least 6 characters", f["password"])
	assert.NotContains(t, f, "whatsapp_number")

	err = v.Validate(LoginForm{WhatsAppNumber: "+62812345678", Password: "secret1"})
	assert.Equal(t, "whatsapp number must start with 08 and be 10-13 digits", fields(t, err)["whatsapp_number"])

	err = v.Validate(LoginForm{})
	f = fields(t, err)
	assert.Equal(t, "whatsapp number is required", f["whatsapp_number"])
	assert.Equal(t, "password is required", f["password"])
}

func TestRegisterForm(t *testing.T) {
	v := New()

	ok := RegisterForm{
		Name:                 "Rina",
		WhatsAppNumber:       "08123456789",
		Password:             "secret1",
		PasswordConfirmation: "secret1",
	}
	assert.NoError(t, v.Validate(ok))

	bad := ok
	bad.Name = "R"
	bad.PasswordConfirmation = "secret2"
	f := fields(t, v.Validate(bad))
	assert.Equal(t, "name must be at least 2 characters", f["name"])
	assert.Equal(t, "passwords do not match", f["password_confirmation"])
}

func TestBookingForm(t *testing.T) {
	v := New(WithClock(fixedClock))

	cases := []struct {
		name    string
		form    BookingForm
		field   string
		message string
	}{
		{
			name: "today is allowed",
			form: BookingForm{ServiceID: 3, BookingDate: "2026-03-10", BookingTime: "09:00"},
		},
		{
			name: "future with notes",
			form: BookingForm{ServiceID: 3, BookingDate: "2026-04-01", BookingTime: "17:45", Notes: "nervous cat"},
		},
		{
			name:    "past date",
			form:    BookingForm{ServiceID: 3, BookingDate: "2026-03-09", BookingTime: "09:00"},
			field:   "booking_date",
			message: "booking date cannot be in the past",
		},
		{
			name:    "malformed date",
			form:    BookingForm{ServiceID: 3, BookingDate: "10/03/2026", BookingTime: "09:00"},
			field:   "booking_date",
			message: "booking date must be a date (YYYY-MM-DD)",
		},
		{
			name:    "missing time",
			form:    BookingForm{ServiceID: 3, BookingDate: "2026-03-11"},
			field:   "booking_time",
			message: "booking time is required",
		},
		{
			name:    "bad time",
			form:    BookingForm{ServiceID: 3, BookingDate: "2026-03-11", BookingTime: "25:00"},
			field:   "booking_time",
			message: "booking time must be a time (HH:MM)",
		},
		{
			name:    "no service",
			form:    BookingForm{BookingDate: "2026-03-11", BookingTime: "10:00"},
			field:   "service_id",
			message: "service id must be greater than 0",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.form)
			if tc.field == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tc.message, fields(t, err)[tc.field])
		})
	}
}

func TestAdminForms(t *testing.T) {
	v := New()

	f := fields(t, v.Validate(ProductForm{Name: "Kibble", Description: "Dry food", ShopeeURL: "not a url"}))
	assert.Equal(t, "pet id must be greater than 0", f["pet_id"])
	assert.Equal(t, "price must be greater than 0", f["price"])
	assert.Equal(t, "shopee url must be a valid URL", f["shopee_url"])

	assert.NoError(t, v.Validate(SliderForm{Title: "Promo", LinkURL: ""}))
	f = fields(t, v.Validate(SliderForm{Title: "Promo", LinkURL: "promo", Order: -1}))
	assert.Equal(t, "link url must be a valid URL", f["link_url"])
	assert.Equal(t, "order must be 0 or more", f["order"])

	f = fields(t, v.Validate(BookingStatusForm{Status: "lost"}))
	assert.Equal(t, "status must be one of: pending confirmed completed cancelled", f["status"])
}
