package api

import (
	"context"
	"net/http"

	"github.com/pawshop/storefront/internal/core/domain"
)

func (c *Client) Pets(ctx context.Context) ([]domain.Pet, error) {
	var out []domain.Pet
	if err := c.get(ctx, "pets", "/pets", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Pet(ctx context.Context, id int64) (*domain.Pet, error) {
	var out domain.Pet
	if err := c.get(ctx, "pet", idPath("/pets", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.get(ctx, "products", "/products", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Product(ctx context.Context, id int64) (*domain.Product, error) {
	var out domain.Product
	if err := c.get(ctx, "product", idPath("/products", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Services(ctx context.Context) ([]domain.Service, error) {
	var out []domain.Service
	if err := c.get(ctx, "services", "/services", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Service(ctx context.Context, id int64) (*domain.Service, error) {
	var out domain.Service
	if err := c.get(ctx, "service", idPath("/services", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Sliders(ctx context.Context) ([]domain.Slider, error) {
	var out []domain.Slider
	if err := c.get(ctx, "sliders", "/sliders", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Bookings(ctx context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	if err := c.get(ctx, "bookings", "/bookings", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBooking(ctx context.Context, in domain.BookingRequest) (*domain.Booking, error) {
	var out domain.Booking
	if err := c.sendJSON(ctx, "create_booking", http.MethodPost, "/bookings", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
