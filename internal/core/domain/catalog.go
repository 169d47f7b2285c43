package domain

import "time"

// Pet is a pet category (cats, dogs, ...) that products and services belong to.
type Pet struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	Products    []Product  `json:"products,omitempty"`
	Services    []Service  `json:"services,omitempty"`
}

// Product is a sellable item. Marketplace URLs point at the external stores
// the shop also lists on.
type Product struct {
	ID           int64      `json:"id"`
	PetID        int64      `json:"pet_id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Price        float64    `json:"price"`
	ImageURL     string     `json:"image_url,omitempty"`
	ShopeeURL    string     `json:"shopee_url,omitempty"`
	TokopediaURL string     `json:"tokopedia_url,omitempty"`
	LazadaURL    string     `json:"lazada_url,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
	Pet          *Pet       `json:"pet,omitempty"`
}

// Service is a bookable offering such as grooming or boarding.
type Service struct {
	ID          int64      `json:"id"`
	PetID       int64      `json:"pet_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	ImageURL    string     `json:"image_url,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	Pet         *Pet       `json:"pet,omitempty"`
}

// Slider is a home page carousel entry.
type Slider struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"image_url"`
	LinkURL     string     `json:"link_url,omitempty"`
	IsActive    bool       `json:"is_active"`
	Order       int        `json:"order"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// PetName returns the name of the embedded pet, or "" when the backend did
// not expand the relation.
func (p Product) PetName() string {
	if p.Pet == nil {
		return ""
	}
	return p.Pet.Name
}

// PetName returns the name of the embedded pet, or "".
func (s Service) PetName() string {
	if s.Pet == nil {
		return ""
	}
	return s.Pet.Name
}
