package apitest

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pawshop/storefront/internal/core/domain"
)

// Seeded accounts.
const (
	AdminNumber      = "081100000001"
	AdminPassword    = "admin123"
	CustomerNumber   = "081200000002"
	CustomerPassword = "secret123"
)

type account struct {
	user domain.User
	hash []byte
}

// catalog is the fake backend's database. Server.mu guards it.
type catalog struct {
	nextID   int64
	accounts []*account
	pets     []domain.Pet
	products []domain.Product
	services []domain.Service
	sliders  []domain.Slider
	bookings []domain.Booking
}

func (d *catalog) id() int64 {
	d.nextID++
	return d.nextID
}

func seed() (*catalog, error) {
	d := &catalog{nextID: 100}
	now := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)

	for _, a := range []struct {
		id       int64
		name     string
		number   string
		password string
		role     domain.Role
	}{
		{1, "Shop Admin", AdminNumber, AdminPassword, domain.RoleAdmin},
		{2, "Sari", CustomerNumber, CustomerPassword, domain.RoleUser},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.MinCost)
		if err != nil {
			return nil, err
		}
		d.accounts = append(d.accounts, &account{
			user: domain.User{ID: a.id, Name: a.name, WhatsAppNumber: a.number, Role: a.role, CreatedAt: &now},
			hash: hash,
		})
	}

	d.pets = []domain.Pet{
		{ID: 1, Name: "Cat", Description: "Cats of every breed", ImageURL: "/storage/pets/cat.jpg"},
		{ID: 2, Name: "Dog", Description: "Dogs big and small", ImageURL: "/storage/pets/dog.jpg"},
	}
	d.products = []domain.Product{
		{ID: 1, PetID: 1, Name: "Premium Cat Food", Description: "1kg dry food", Price: 50000, ShopeeURL: "https://shopee.co.id/cat-food"},
		{ID: 2, PetID: 2, Name: "Chew Toy", Description: "Durable rubber toy", Price: 10000},
		{ID: 3, PetID: 1, Name: "Scratching Post", Description: "60cm sisal post", Price: 150000},
		{ID: 4, PetID: 2, Name: "Leash", Description: "Nylon leash", Price: 35000},
	}
	d.services = []domain.Service{
		{ID: 1, PetID: 1, Name: "Cat Grooming", Description: "Bath, brush and nail trim", Price: 75000},
		{ID: 2, PetID: 2, Name: "Dog Grooming", Description: "Bath, brush and nail trim", Price: 120000},
		{ID: 3, PetID: 2, Name: "Dog Boarding", Description: "One night stay", Price: 200000},
		{ID: 4, PetID: 1, Name: "Vaccination", Description: "Yearly vaccine", Price: 150000},
	}
	d.sliders = []domain.Slider{
		{ID: 1, Title: "Grooming week", ImageURL: "/storage/sliders/1.jpg", IsActive: true, Order: 2},
		{ID: 2, Title: "Old promo", ImageURL: "/storage/sliders/2.jpg", IsActive: false, Order: 1},
		{ID: 3, Title: "New arrivals", ImageURL: "/storage/sliders/3.jpg", LinkURL: "https://pawshop.test/new", IsActive: true, Order: 1},
	}
	return d, nil
}

func (d *catalog) accountByNumber(number string) *account {
	for _, a := range d.accounts {
		if a.user.WhatsAppNumber == number {
			return a
		}
	}
	return nil
}

func (d *catalog) accountByID(id int64) *account {
	for _, a := range d.accounts {
		if a.user.ID == id {
			return a
		}
	}
	return nil
}

func (d *catalog) pet(id int64) *domain.Pet {
	for i := range d.pets {
		if d.pets[i].ID == id {
			return &d.pets[i]
		}
	}
	return nil
}

func (d *catalog) product(id int64) *domain.Product {
	for i := range d.products {
		if d.products[i].ID == id {
			return &d.products[i]
		}
	}
	return nil
}

func (d *catalog) service(id int64) *domain.Service {
	for i := range d.services {
		if d.services[i].ID == id {
			return &d.services[i]
		}
	}
	return nil
}

func (d *catalog) slider(id int64) *domain.Slider {
	for i := range d.sliders {
		if d.sliders[i].ID == id {
			return &d.sliders[i]
		}
	}
	return nil
}

func (d *catalog) booking(id int64) *domain.Booking {
	for i := range d.bookings {
		if d.bookings[i].ID == id {
			return &d.bookings[i]
		}
	}
	return nil
}

// withPet returns p with its pet relation expanded, as the backend does.
func (d *catalog) withPet(p domain.Product) domain.Product {
	if pet := d.pet(p.PetID); pet != nil {
		cp := *pet
		p.Pet = &cp
	}
	return p
}

func (d *catalog) serviceWithPet(s domain.Service) domain.Service {
	if pet := d.pet(s.PetID); pet != nil {
		cp := *pet
		s.Pet = &cp
	}
	return s
}

func (d *catalog) bookingWithRelations(b domain.Booking) domain.Booking {
	if svc := d.service(b.ServiceID); svc != nil {
		cp := d.serviceWithPet(*svc)
		b.Service = &cp
	}
	if a := d.accountByID(b.UserID); a != nil {
		u := a.user
		b.User = &u
	}
	return b
}

func removeByID[T any](items []T, id int64, idOf func(T) int64) ([]T, bool) {
	for i, it := range items {
		if idOf(it) == id {
			return append(items[:i], items[i+1:]...), true
		}
	}
	return items, false
}
