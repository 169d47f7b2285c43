package apitest

import (
	"errors"
	"net/http"
	"path"

	"github.com/labstack/echo/v4"

	"github.com/pawshop/storefront/internal/core/domain"
)

type petForm struct {
	Name        string `form:"name"        json:"name"        validate:"required"`
	Description string `form:"description" json:"description"`
}

type productForm struct {
	PetID        int64   `form:"pet_id"        json:"pet_id"        validate:"required,gt=0"`
	Name         string  `form:"name"          json:"name"          validate:"required"`
	Description  string  `form:"description"   json:"description"   validate:"required"`
	Price        float64 `form:"price"         json:"price"         validate:"required,gt=0"`
	ShopeeURL    string  `form:"shopee_url"    json:"shopee_url"    validate:"omitempty,url"`
	TokopediaURL string  `form:"tokopedia_url" json:"tokopedia_url" validate:"omitempty,url"`
	LazadaURL    string  `form:"lazada_url"    json:"lazada_url"    validate:"omitempty,url"`
}

type serviceForm struct {
	PetID       int64   `json:"pet_id"      validate:"required,gt=0"`
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
}

type sliderForm struct {
	Title       string `form:"title"       json:"title"    validate:"required"`
	Description string `form:"description" json:"description"`
	LinkURL     string `form:"link_url"    json:"link_url" validate:"omitempty,url"`
	IsActive    bool   `form:"is_active"   json:"is_active"`
	Order       int    `form:"order"       json:"order"`
}

type statusForm struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

func bindValid(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(v)
}

// imageURL stores nothing; it returns where the upload would be served from,
// or "" when the request carried no image.
func imageURL(c echo.Context, dir string) (string, error) {
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}
	return path.Join("/storage", dir, fh.Filename), nil
}

// Pets

func (s *Server) createPet(c echo.Context) error {
	var f petForm
	if err := bindValid(c, &f); err != nil {
		return err
	}
	img, err := imageURL(c, "pets")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	pet := domain.Pet{ID: s.data.id(), Name: f.Name, Description: f.Description, ImageURL: img}
	s.data.pets = append(s.data.pets, pet)
	return c.JSON(http.StatusCreated, pet)
}

func (s *Server) updatePet(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var f petForm
	if err := bindValid(c, &f); err != nil {
		return err
	}
	img, err := imageURL(c, "pets")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	pet := s.data.pet(id)
	if pet == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Pet not found")
	}
	pet.Name, pet.Description = f.Name, f.Description
	if img != "" {
		pet.ImageURL = img
	}
	return c.JSON(http.StatusOK, *pet)
}

func (s *Server) deletePet(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	if s.data.pets, ok = removeByID(s.data.pets, id, func(p domain.Pet) int64 { return p.ID }); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Pet not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// Products

func (s *Server) createProduct(c echo.Context) error {
	var f productForm
	if err := bindValid(c, &f); err != nil {
		return err
	}
	img, err := imageURL(c, "products")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.pet(f.PetID) == nil {
		return fieldInvalid("pet_id", "The selected pet id is invalid.")
	}
	p := domain.Product{
		ID:           s.data.id(),
		PetID:        f.PetID,
		Name:         f.Name,
		Description:  f.Description,
		Price:        f.Price,
		ImageURL:     img,
		ShopeeURL:    f.ShopeeURL,
		TokopediaURL: f.TokopediaURL,
		LazadaURL:    f.LazadaURL,
	}
	s.data.products = append(s.data.products, p)
	return c.JSON(http.StatusCreated, s.data.withPet(p))
}

func (s *Server) updateProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var f productForm
	if err := bindValid(c, &f); err != nil {
		return err
	}
	img, err := imageURL(c, "products")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.data.product(id)
	if p == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if s.data.pet(f.PetID) == nil {
		return fieldInvalid("pet_id", "The selected pet id is invalid.")
	}
	p.PetID, p.Name, p.Description, p.Price = f.PetID, f.Name, f.Description, f.Price
	p.ShopeeURL, p.TokopediaURL, p.LazadaURL = f.ShopeeURL, f.TokopediaURL, f.LazadaURL
	if img != "" {
		p.ImageURL = img
	}
	return c.JSON(http.StatusOK, s.data.withPet(*p))
}

func (s *Server) deleteProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	if s.data.products, ok = removeByID(s.data.products, id, func(p domain.Product) int64 { return p.ID }); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// Services

func (s *Server) createService(c echo.Context) error {
	var f serviceForm
	if err := bindValid(c, &f); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.pet(f.PetID) == nil {
		return fieldInvalid("pet_id", "The selected pet id is invalid.")
	}
	sv := domain.Service{ID: s.data.id(), PetID: f.PetID, Name: f.Name, Description: f.Description, Price: f.Price}
	s.data.services = append(s.data.services, sv)
	return c.JSON(http.StatusCreated, s.data.serviceWithPet(sv))
}

func (s *Server) updateService(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var f serviceForm
	if err := bindValid(c, &f); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sv := s.data.service(id)
	if sv == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Service not found")
	}
	sv.PetID, sv.Name, sv.Description, sv.Price = f.PetID, f.Name, f.Description, f.Price
	return c.JSON(http.StatusOK, s.data.serviceWithPet(*sv))
}

func (s *Server) deleteService(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	if s.data.services, ok = removeByID(s.data.services, id, func(sv domain.Service) int64 { return sv.ID }); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Service not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// Sliders

func (s *Server) listAllSliders(c echo.Context) error {
	s.mu.Lock()
	out := append([]domain.Slider(nil), s.data.sliders...)
	s.mu.Unlock()
	return c.JSON(http.StatusOK, out)
}

func (s *Server) createSlider(c echo.Context) error {
	var f sliderForm
	if err := bindValid(c, &f); err != nil {
		return err
	}
	img, err := imageURL(c, "sliders")
	if err != nil {
		return err
	}
	if img == "" {
		return fieldInvalid("image", "The image field is required.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sl := domain.Slider{
		ID:          s.data.id(),
		Title:       f.Title,
		Description: f.Description,
		ImageURL:    img,
		LinkURL:     f.LinkURL,
		IsActive:    f.IsActive,
		Order:       f.Order,
	}
	s.data.sliders = append(s.data.sliders, sl)
	return c.JSON(http.StatusCreated, sl)
}

func (s *Server) updateSlider(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var f sliderForm
	if err := bindValid(c, &f); err != nil {
		return err
	}
	img, err := imageURL(c, "sliders")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sl := s.data.slider(id)
	if sl == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Slider not found")
	}
	sl.Title, sl.Description, sl.LinkURL = f.Title, f.Description, f.LinkURL
	sl.IsActive, sl.Order = f.IsActive, f.Order
	if img != "" {
		sl.ImageURL = img
	}
	return c.JSON(http.StatusOK, *sl)
}

func (s *Server) deleteSlider(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	if s.data.sliders, ok = removeByID(s.data.sliders, id, func(sl domain.Slider) int64 { return sl.ID }); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Slider not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// Bookings

// listAllBookings returns every booking, newest first.
func (s *Server) listAllBookings(c echo.Context) error {
	s.mu.Lock()
	out := make([]domain.Booking, 0, len(s.data.bookings))
	for i := len(s.data.bookings) - 1; i >= 0; i-- {
		out = append(out, s.data.bookingWithRelations(s.data.bookings[i]))
	}
	s.mu.Unlock()
	return c.JSON(http.StatusOK, out)
}

func (s *Server) updateBooking(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var f statusForm
	if err := bindValid(c, &f); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.data.booking(id)
	if b == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Booking not found")
	}
	b.Status = domain.BookingStatus(f.Status)
	return c.JSON(http.StatusOK, s.data.bookingWithRelations(*b))
}

func (s *Server) deleteBooking(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	if s.data.bookings, ok = removeByID(s.data.bookings, id, func(b domain.Booking) int64 { return b.ID }); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Booking not found")
	}
	return c.NoContent(http.StatusNoContent)
}
