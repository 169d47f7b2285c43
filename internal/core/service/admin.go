package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pawshop/storefront/internal/core/domain"
	"github.com/pawshop/storefront/internal/core/ports"
	"github.com/pawshop/storefront/internal/validation"
)

// recentBookings is how many bookings the dashboard lists.
const recentBookings = 5

// AllBookingStatuses selects every booking in FilterBookings and is the
// total's key in CountByStatus.
const AllBookingStatuses = "all"

// AdminService backs the admin console. Every operation checks the admin
// role before touching the backend.
type AdminService struct {
	api       ports.AdminAPI
	gate      Gatekeeper
	validator *validation.Validator
	log       zerolog.Logger
}

func NewAdminService(api ports.AdminAPI, gate Gatekeeper, v *validation.Validator, log zerolog.Logger) *AdminService {
	return &AdminService{
		api:       api,
		gate:      gate,
		validator: v,
		log:       log.With().Str("component", "admin").Logger(),
	}
}

// Dashboard summarises the console's four lists.
type Dashboard struct {
	Pets     int
	Products int
	Services int
	Bookings int
	Pending  int
	Recent   []domain.Booking
}

// Dashboard fetches the admin lists concurrently and summarises them.
func (s *AdminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	if _, err := s.gate.RequireAdmin(ctx); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	var (
		d        Dashboard
		bookings []domain.Booking
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pets, err := s.api.AdminPets(gctx)
		d.Pets = len(pets)
		return err
	})
	g.Go(func() error {
		products, err := s.api.AdminProducts(gctx)
		d.Products = len(products)
		return err
	})
	g.Go(func() error {
		services, err := s.api.AdminServices(gctx)
		d.Services = len(services)
		return err
	})
	g.Go(func() error {
		var err error
		bookings, err = s.api.AdminBookings(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	d.Bookings = len(bookings)
	d.Pending = CountByStatus(bookings)[string(domain.BookingPending)]
	d.Recent = head(bookings, recentBookings)
	return &d, nil
}

// Pets

func (s *AdminService) Pets(ctx context.Context) ([]domain.Pet, error) {
	if _, err := s.gate.RequireAdmin(ctx); err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	pets, err := s.api.AdminPets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	return pets, nil
}

func (s *AdminService) CreatePet(ctx context.Context, in ports.PetInput) (*domain.Pet, error) {
	if err := s.checkPet(ctx, in); err != nil {
		return nil, fmt.Errorf("create pet: %w", err)
	}
	pet, err := s.api.CreatePet(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create pet: %w", err)
	}
	s.log.Info().Int64("pet_id", pet.ID).Msg("pet created")
	return pet, nil
}

func (s *AdminService) UpdatePet(ctx context.Context, id int64, in ports.PetInput) (*domain.Pet, error) {
	if err := s.checkPet(ctx, in); err != nil {
		return nil, fmt.Errorf("update pet %d: %w", id, err)
	}
	pet, err := s.api.UpdatePet(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update pet %d: %w", id, err)
	}
	s.log.Info().Int64("pet_id", id).Msg("pet updated")
	return pet, nil
}

func (s *AdminService) DeletePet(ctx context.Context, id int64) error {
	if _, err := s.gate.RequireAdmin(ctx); err != nil {
		return fmt.Errorf("delete pet %d: %w", id, err)
	}
	if err := s.api.DeletePet(ctx, id); err != nil {
		return fmt.Errorf("delete pet %d: %w", id, err)
	}
	s.log.Info().Int64("pet_id", id).Msg("pet deleted")
	return nil
}

func (s *AdminService) checkPet(ctx context.Context, in ports.PetInput) error {
	if _, err := s.gate.RequireAdmin(ctx); err != nil {
		return err
	}
	return s.validator.Validate(validation.PetForm{Name: in.Name, Description: in.Description})
}

// Products

func (s *AdminService) Products(ctx context.Context) ([]domain.Product, error) {
	if _, err := s.gate.RequireAdmin(ctx); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	products, err := s.api.AdminProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *AdminService) CreateProduct(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	if err := s.checkProduct(ctx, in); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	product, err := s.api.CreateProduct(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.log.Info().Int64("product_id", product.ID).Msg("product created")
	return product, nil
}

func (s *AdminService) UpdateProduct(ctx context.Context, id int64, in ports.ProductInput) (*domain.Product, error) {
	if err := s.checkProduct(ctx, in); err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	product, err := s.api.UpdateProduct(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	s.log.Info().Int64("product_id", id).Msg("product updated")
	return product, nil
}

func (s *AdminService) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.gate.RequireAdmin(ctx); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	s.log.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}

func (s *AdminService) checkProduct(ctx context.Context, in ports.ProductInput) error {
	if _, err := s.gate.RequireAdmin(ctx); err != nil {
		return err
	}
	return s.validator.Validate(validation.ProductForm{
		PetID:        in.PetID,
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		ShopeeURL:    in.ShopeeURL,
		TokopediaURL: in.TokopediaURL,
		LazadaURL:    in.LazadaURL,
	})
}

// Services

func (s *AdminService) Services(ctx context.Context) ([]domain.Service, error) {
	if _, err := s.gate.RequireAdmin(ctx); err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	services, err := s.api.AdminServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

func (s *AdminService) CreateService(ctx context.Context, in ports.ServiceInput) (*domain.Service, error) {
	if err := s.checkService(ctx, in); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	service, err := s.api.CreateService(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	s.log.Info().Int64("service_id", service.ID).Msg("service created")
	return service, nil
}

func (s *AdminService) UpdateService(ctx context.Context, id int64, in ports.ServiceInput) (*domain.Service, error) {
	if err := s.checkService(ctx, in); err != nil {
		return nil, fmt.Errorf("update service %d: %w", id, err)
	}
	service, err := s.api.UpdateService(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update service %d: %w", id, err)
	}
	s.log.Info().Int64("service_id", id).Msg("service updated")
	return service, nil
}

func (s *AdminService) DeleteService(ctx context.Context, id int64) error {
	if _, err := s.gate.RequireAdmin(ctx); err != nil {
		return fmt.Errorf("delete service %d: %w", id, err)
	}
	if err := s.api.DeleteService(ctx, id); err != nil {
		return fmt.Errorf("delete service %d: %w", id, err)
	}
	s.log.Info().Int64("service_id", id).Msg("service deleted")
	return nil
}

func (s *AdminService) checkService(ctx context.Context, in ports.ServiceInput) error {
	if _, err := s.gate.RequireAdmin(ctx); err != nil {
		return err
	}
	return s.validator.Validate(validation.ServiceForm{
		PetID:       in.PetID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
	})
}

// Sliders

func (s *AdminService) Sliders(ctx context.Context) ([]domain.Slider, error) {
	if _, err := s.gate.RequireAdmin(ctx); err != nil {
		return nil, fmt.Errorf("list sliders: %w", err)
	}
	sliders, err := s.api.AdminSliders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sliders: %w", err)
	}
	return sliders, nil
}

func (s *AdminService) CreateSlider(ctx context.Context, in ports.SliderInput) (*domain.Slider, error) {
	if err := s.checkSlider(ctx, in); err != nil {
		return nil, fmt.Errorf("create slider: %w", err)
	}
	slider, err := s.api.CreateSlider(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create slider: %w", err)
	}
	s.log.Info().Int64("slider_id", slider.ID).Msg("slider created")
	return slider, nil
}

func (s *AdminService) UpdateSlider(ctx context.Context, id int64, in ports.SliderInput) (*domain.Slider, error) {
	if err := s.checkSlider(ctx, in); err != nil {
		return nil, fmt.Errorf("update slider %d: %w", id, err)
	}
	slider, err := s.api.UpdateSlider(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update slider %d: %w", id, err)
	}
	s.log.Info().Int64("slider_id", id).Msg("slider updated")
	return slider, nil
}

func (s *AdminService) DeleteSlider(ctx context.Context, id int64) error {
	if _, err := s.gate.RequireAdmin(ctx); err != nil {
		return fmt.Errorf("delete slider %d: %w", id, err)
	}
	if err := s.api.DeleteSlider(ctx, id); err != nil {
		return fmt.Errorf("delete slider %d: %w", id, err)
	}
	s.log.Info().Int64("slider_id", id).Msg("slider deleted")
	return nil
}

func (s *AdminService) checkSlider(ctx context.Context, in ports.SliderInput) error {
	if _, err := s.gate.RequireAdmin(ctx); err != nil {
		return err
	}
	return s.validator.Validate(validation.SliderForm{
		Title:       in.Title,
		Description: in.Description,
		LinkURL:     in.LinkURL,
		Order:       in.Order,
	})
}

// Bookings

func (s *AdminService) Bookings(ctx context.Context) ([]domain.Booking, error) {
	if _, err := s.gate.RequireAdmin(ctx); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	bookings, err := s.api.AdminBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (s *AdminService) UpdateBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	if _, err := s.gate.RequireAdmin(ctx); err != nil {
		return nil, fmt.Errorf("update booking %d: %w", id, err)
	}
	if err := s.validator.Validate(validation.BookingStatusForm{Status: string(status)}); err != nil {
		return nil, err
	}
	booking, err := s.api.UpdateBookingStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("update booking %d: %w", id, err)
	}
	s.log.Info().Int64("booking_id", id).Str("status", string(status)).Msg("booking status updated")
	return booking, nil
}

func (s *AdminService) DeleteBooking(ctx context.Context, id int64) error {
	if _, err := s.gate.RequireAdmin(ctx); err != nil {
		return fmt.Errorf("delete booking %d: %w", id, err)
	}
	if err := s.api.DeleteBooking(ctx, id); err != nil {
		return fmt.Errorf("delete booking %d: %w", id, err)
	}
	s.log.Info().Int64("booking_id", id).Msg("booking deleted")
	return nil
}

// FilterBookings keeps the bookings in status; "" or AllBookingStatuses keep
// everything.
func FilterBookings(items []domain.Booking, status string) []domain.Booking {
	if status == "" || status == AllBookingStatuses {
		return items
	}
	out := make([]domain.Booking, 0, len(items))
	for _, b := range items {
		if string(b.Status) == status {
			out = append(out, b)
		}
	}
	return out
}

// CountByStatus counts bookings per status. Every known status is present,
// and AllBookingStatuses holds the total.
func CountByStatus(items []domain.Booking) map[string]int {
	counts := make(map[string]int, len(domain.BookingStatuses)+1)
	counts[AllBookingStatuses] = len(items)
	for _, st := range domain.BookingStatuses {
		counts[string(st)] = 0
	}
	for _, b := range items {
		counts[string(b.Status)]++
	}
	return counts
}
