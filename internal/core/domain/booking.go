package domain

import "time"

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// BookingStatuses lists every status in the order admin screens show them.
var BookingStatuses = []BookingStatus{
	BookingPending,
	BookingConfirmed,
	BookingCompleted,
	BookingCancelled,
}

// Valid reports whether s is one of the known statuses.
func (s BookingStatus) Valid() bool {
	for _, known := range BookingStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Booking is a scheduled service appointment.
type Booking struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"user_id"`
	ServiceID   int64         `json:"service_id"`
	BookingDate string        `json:"booking_date"`
	BookingTime string        `json:"booking_time"`
	Notes       string        `json:"notes,omitempty"`
	Status      BookingStatus `json:"status"`
	CreatedAt   *time.Time    `json:"created_at,omitempty"`
	UpdatedAt   *time.Time    `json:"updated_at,omitempty"`
	User        *User         `json:"user,omitempty"`
	Service     *Service      `json:"service,omitempty"`
}

// BookingRequest is the payload for creating a booking. BookingDate is
// YYYY-MM-DD and BookingTime HH:MM, as the backend expects them.
type BookingRequest struct {
	ServiceID   int64  `json:"service_id"`
	BookingDate string `json:"booking_date"`
	BookingTime string `json:"booking_time"`
	Notes       string `json:"notes,omitempty"`
}
