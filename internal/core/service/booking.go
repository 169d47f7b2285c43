package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pawshop/storefront/internal/core/domain"
	"github.com/pawshop/storefront/internal/core/ports"
	"github.com/pawshop/storefront/internal/validation"
)

// BookingService lets a signed-in customer book services and see their bookings.
type BookingService struct {
	api       ports.BookingAPI
	gate      Gatekeeper
	validator *validation.Validator
	log       zerolog.Logger
}

func NewBookingService(api ports.BookingAPI, gate Gatekeeper, v *validation.Validator, log zerolog.Logger) *BookingService {
	return &BookingService{
		api:       api,
		gate:      gate,
		validator: v,
		log:       log.With().Str("component", "booking").Logger(),
	}
}

// Create validates the booking form, checks the session, then books.
func (s *BookingService) Create(ctx context.Context, in domain.BookingRequest) (*domain.Booking, error) {
	if err := s.validator.Validate(validation.BookingForm{
		ServiceID:   in.ServiceID,
		BookingDate: in.BookingDate,
		BookingTime: in.BookingTime,
		Notes:       in.Notes,
	}); err != nil {
		return nil, err
	}

	if _, err := s.gate.RequireUser(ctx); err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return nil, domain.NewError(domain.KindUnauthenticated, "please login to book this service")
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	booking, err := s.api.CreateBooking(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info().
		Int64("booking_id", booking.ID).
		Int64("service_id", in.ServiceID).
		Str("date", in.BookingDate).
		Msg("booking created")
	return booking, nil
}

// List returns the signed-in customer's bookings.
func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	if _, err := s.gate.RequireUser(ctx); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	bookings, err := s.api.Bookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}
