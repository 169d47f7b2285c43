package api

import (
	"context"
	"net/http"

	"github.com/pawshop/storefront/internal/core/domain"
	"github.com/pawshop/storefront/internal/core/ports"
)

// Multipart updates are POSTs to the item URL, matching the backend routes.

func (c *Client) AdminPets(ctx context.Context) ([]domain.Pet, error) {
	var out []domain.Pet
	if err := c.get(ctx, "admin_pets", "/admin/pets", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreatePet(ctx context.Context, in ports.PetInput) (*domain.Pet, error) {
	return c.savePet(ctx, "admin_create_pet", "/admin/pets", in)
}

func (c *Client) UpdatePet(ctx context.Context, id int64, in ports.PetInput) (*domain.Pet, error) {
	return c.savePet(ctx, "admin_update_pet", idPath("/admin/pets", id), in)
}

func (c *Client) DeletePet(ctx context.Context, id int64) error {
	return c.delete(ctx, "admin_delete_pet", idPath("/admin/pets", id))
}

func (c *Client) savePet(ctx context.Context, endpoint, path string, in ports.PetInput) (*domain.Pet, error) {
	f := newForm()
	f.field("name", in.Name)
	f.optional("description", in.Description)
	f.image(in.Image)
	req, err := f.build(endpoint, http.MethodPost, path)
	if err != nil {
		return nil, err
	}
	var out domain.Pet
	if err := c.fetch(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.get(ctx, "admin_products", "/admin/products", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	return c.saveProduct(ctx, "admin_create_product", "/admin/products", in)
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, in ports.ProductInput) (*domain.Product, error) {
	return c.saveProduct(ctx, "admin_update_product", idPath("/admin/products", id), in)
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.delete(ctx, "admin_delete_product", idPath("/admin/products", id))
}

func (c *Client) saveProduct(ctx context.Context, endpoint, path string, in ports.ProductInput) (*domain.Product, error) {
	f := newForm()
	f.number("pet_id", in.PetID)
	f.field("name", in.Name)
	f.field("description", in.Description)
	f.price("price", in.Price)
	f.optional("shopee_url", in.ShopeeURL)
	f.optional("tokopedia_url", in.TokopediaURL)
	f.optional("lazada_url", in.LazadaURL)
	f.image(in.Image)
	req, err := f.build(endpoint, http.MethodPost, path)
	if err != nil {
		return nil, err
	}
	var out domain.Product
	if err := c.fetch(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminServices(ctx context.Context) ([]domain.Service, error) {
	var out []domain.Service
	if err := c.get(ctx, "admin_services", "/admin/services", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateService(ctx context.Context, in ports.ServiceInput) (*domain.Service, error) {
	var out domain.Service
	if err := c.sendJSON(ctx, "admin_create_service", http.MethodPost, "/admin/services", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateService(ctx context.Context, id int64, in ports.ServiceInput) (*domain.Service, error) {
	var out domain.Service
	if err := c.sendJSON(ctx, "admin_update_service", http.MethodPut, idPath("/admin/services", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteService(ctx context.Context, id int64) error {
	return c.delete(ctx, "admin_delete_service", idPath("/admin/services", id))
}

func (c *Client) AdminSliders(ctx context.Context) ([]domain.Slider, error) {
	var out []domain.Slider
	if err := c.get(ctx, "admin_sliders", "/admin/sliders", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSlider(ctx context.Context, in ports.SliderInput) (*domain.Slider, error) {
	return c.saveSlider(ctx, "admin_create_slider", "/admin/sliders", in)
}

func (c *Client) UpdateSlider(ctx context.Context, id int64, in ports.SliderInput) (*domain.Slider, error) {
	return c.saveSlider(ctx, "admin_update_slider", idPath("/admin/sliders", id), in)
}

func (c *Client) DeleteSlider(ctx context.Context, id int64) error {
	return c.delete(ctx, "admin_delete_slider", idPath("/admin/sliders", id))
}

func (c *Client) saveSlider(ctx context.Context, endpoint, path string, in ports.SliderInput) (*domain.Slider, error) {
	f := newForm()
	f.field("title", in.Title)
	f.optional("description", in.Description)
	f.optional("link_url", in.LinkURL)
	f.flag("is_active", in.IsActive)
	f.number("order", int64(in.Order))
	f.image(in.Image)
	req, err := f.build(endpoint, http.MethodPost, path)
	if err != nil {
		return nil, err
	}
	var out domain.Slider
	if err := c.fetch(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminBookings(ctx context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	if err := c.get(ctx, "admin_bookings", "/admin/bookings", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	payload := struct {
		Status domain.BookingStatus `json:"status"`
	}{Status: status}

	var out domain.Booking
	if err := c.sendJSON(ctx, "admin_update_booking", http.MethodPut, idPath("/admin/bookings", id), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBooking(ctx context.Context, id int64) error {
	return c.delete(ctx, "admin_delete_booking", idPath("/admin/bookings", id))
}
