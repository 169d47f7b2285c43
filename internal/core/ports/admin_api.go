package ports

import (
	"context"

	"github.com/pawshop/storefront/internal/core/domain"
)

// Upload is an image attached to a multipart admin form.
type Upload struct {
	Filename string
	Data     []byte
}

type PetInput struct {
	Name        string
	Description string
	Image       *Upload
}

type ProductInput struct {
	PetID        int64
	Name         string
	Description  string
	Price        float64
	ShopeeURL    string
	TokopediaURL string
	LazadaURL    string
	Image        *Upload
}

type ServiceInput struct {
	PetID       int64   `json:"pet_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type SliderInput struct {
	Title       string
	Description string
	LinkURL     string
	IsActive    bool
	Order       int
	Image       *Upload
}

// AdminAPI covers the /admin endpoints. The backend enforces the admin role;
// callers check it locally first to avoid a pointless round trip.
type AdminAPI interface {
	AdminPets(ctx context.Context) ([]domain.Pet, error)
	CreatePet(ctx context.Context, in PetInput) (*domain.Pet, error)
	UpdatePet(ctx context.Context, id int64, in PetInput) (*domain.Pet, error)
	DeletePet(ctx context.Context, id int64) error

	AdminProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, in ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	AdminServices(ctx context.Context) ([]domain.Service, error)
	CreateService(ctx context.Context, in ServiceInput) (*domain.Service, error)
	UpdateService(ctx context.Context, id int64, in ServiceInput) (*domain.Service, error)
	DeleteService(ctx context.Context, id int64) error

	AdminSliders(ctx context.Context) ([]domain.Slider, error)
	CreateSlider(ctx context.Context, in SliderInput) (*domain.Slider, error)
	UpdateSlider(ctx context.Context, id int64, in SliderInput) (*domain.Slider, error)
	DeleteSlider(ctx context.Context, id int64) error

	AdminBookings(ctx context.Context) ([]domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
}
