package apitest

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pawshop/storefront/internal/apitest/middleware"
	"github.com/pawshop/storefront/internal/core/domain"
)

type bookingRequest struct {
	ServiceID   int64  `json:"service_id"   validate:"required,gt=0"`
	BookingDate string `json:"booking_date" validate:"required,datetime=2006-01-02"`
	BookingTime string `json:"booking_time" validate:"required"`
	Notes       string `json:"notes"`
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Not Found")
	}
	return id, nil
}

func (s *Server) listPets(c echo.Context) error {
	s.mu.Lock()
	out := append([]domain.Pet(nil), s.data.pets...)
	s.mu.Unlock()
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getPet(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	pet := s.data.pet(id)
	if pet == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Pet not found")
	}
	out := *pet
	for _, p := range s.data.products {
		if p.PetID == id {
			out.Products = append(out.Products, p)
		}
	}
	for _, sv := range s.data.services {
		if sv.PetID == id {
			out.Services = append(out.Services, sv)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) listProducts(c echo.Context) error {
	s.mu.Lock()
	out := make([]domain.Product, 0, len(s.data.products))
	for _, p := range s.data.products {
		out = append(out, s.data.withPet(p))
	}
	s.mu.Unlock()
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.data.product(id)
	if p == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}
	return c.JSON(http.StatusOK, s.data.withPet(*p))
}

func (s *Server) listServices(c echo.Context) error {
	s.mu.Lock()
	out := make([]domain.Service, 0, len(s.data.services))
	for _, sv := range s.data.services {
		out = append(out, s.data.serviceWithPet(sv))
	}
	s.mu.Unlock()
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getService(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sv := s.data.service(id)
	if sv == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Service not found")
	}
	return c.JSON(http.StatusOK, s.data.serviceWithPet(*sv))
}

// listSliders is the public carousel: active entries only, in display order.
func (s *Server) listSliders(c echo.Context) error {
	s.mu.Lock()
	out := make([]domain.Slider, 0, len(s.data.sliders))
	for _, sl := range s.data.sliders {
		if sl.IsActive {
			out = append(out, sl)
		}
	}
	s.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return c.JSON(http.StatusOK, out)
}

func (s *Server) listBookings(c echo.Context) error {
	userID, _ := c.Get(middleware.KeyUserID).(int64)

	s.mu.Lock()
	out := make([]domain.Booking, 0)
	for i := len(s.data.bookings) - 1; i >= 0; i-- {
		if b := s.data.bookings[i]; b.UserID == userID {
			out = append(out, s.data.bookingWithRelations(b))
		}
	}
	s.mu.Unlock()
	return c.JSON(http.StatusOK, out)
}

func (s *Server) createBooking(c echo.Context) error {
	userID, _ := c.Get(middleware.KeyUserID).(int64)

	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.service(req.ServiceID) == nil {
		return fieldInvalid("service_id", "The selected service id is invalid.")
	}
	now := s.now()
	b := domain.Booking{
		ID:          s.data.id(),
		UserID:      userID,
		ServiceID:   req.ServiceID,
		BookingDate: req.BookingDate,
		BookingTime: req.BookingTime,
		Notes:       req.Notes,
		Status:      domain.BookingPending,
		CreatedAt:   &now,
	}
	s.data.bookings = append(s.data.bookings, b)
	return c.JSON(http.StatusCreated, s.data.bookingWithRelations(b))
}
