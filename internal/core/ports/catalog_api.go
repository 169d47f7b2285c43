package ports

import (
	"context"

	"github.com/pawshop/storefront/internal/core/domain"
)

// CatalogAPI covers the public, read-only storefront endpoints.
type CatalogAPI interface {
	Pets(ctx context.Context) ([]domain.Pet, error)
	Pet(ctx context.Context, id int64) (*domain.Pet, error)
	Products(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, id int64) (*domain.Product, error)
	Services(ctx context.Context) ([]domain.Service, error)
	Service(ctx context.Context, id int64) (*domain.Service, error)
	Sliders(ctx context.Context) ([]domain.Slider, error)
}

// BookingAPI covers the signed-in customer's bookings.
type BookingAPI interface {
	Bookings(ctx context.Context) ([]domain.Booking, error)
	CreateBooking(ctx context.Context, in domain.BookingRequest) (*domain.Booking, error)
}
