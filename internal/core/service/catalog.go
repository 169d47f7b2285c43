package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pawshop/storefront/internal/core/domain"
	"github.com/pawshop/storefront/internal/core/ports"
)

// homeSectionSize is how many pets, products and services the home page shows.
const homeSectionSize = 3

// AllPetTypes selects every pet type in a Filter.
const AllPetTypes = "all"

// CatalogService serves the public storefront: pets, products, services and
// the home page carousel.
type CatalogService struct {
	api ports.CatalogAPI
	log zerolog.Logger
}

func NewCatalogService(api ports.CatalogAPI, log zerolog.Logger) *CatalogService {
	return &CatalogService{api: api, log: log.With().Str("component", "catalog").Logger()}
}

func (s *CatalogService) Pets(ctx context.Context) ([]domain.Pet, error) {
	pets, err := s.api.Pets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	return pets, nil
}

func (s *CatalogService) Pet(ctx context.Context, id int64) (*domain.Pet, error) {
	pet, err := s.api.Pet(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get pet %d: %w", id, err)
	}
	return pet, nil
}

func (s *CatalogService) Products(ctx context.Context) ([]domain.Product, error) {
	products, err := s.api.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) Product(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.api.Product(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return product, nil
}

func (s *CatalogService) Services(ctx context.Context) ([]domain.Service, error) {
	services, err := s.api.Services(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

func (s *CatalogService) Service(ctx context.Context, id int64) (*domain.Service, error) {
	service, err := s.api.Service(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get service %d: %w", id, err)
	}
	return service, nil
}

// Sliders returns the active carousel entries sorted by their order field.
func (s *CatalogService) Sliders(ctx context.Context) ([]domain.Slider, error) {
	all, err := s.api.Sliders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sliders: %w", err)
	}

	active := make([]domain.Slider, 0, len(all))
	for _, sl := range all {
		if sl.IsActive {
			active = append(active, sl)
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].Order < active[j].Order })
	return active, nil
}

// HomePage is the featured content of the landing page.
type HomePage struct {
	Pets     []domain.Pet
	Products []domain.Product
	Services []domain.Service
}

// Home loads the three home page sections concurrently. Any failure fails
// the whole page, as one error banner is all the page shows.
func (s *CatalogService) Home(ctx context.Context) (*HomePage, error) {
	var page HomePage
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		pets, err := s.api.Pets(gctx)
		if err != nil {
			return fmt.Errorf("pets: %w", err)
		}
		page.Pets = head(pets, homeSectionSize)
		return nil
	})
	g.Go(func() error {
		products, err := s.api.Products(gctx)
		if err != nil {
			return fmt.Errorf("products: %w", err)
		}
		page.Products = head(products, homeSectionSize)
		return nil
	})
	g.Go(func() error {
		services, err := s.api.Services(gctx)
		if err != nil {
			return fmt.Errorf("services: %w", err)
		}
		page.Services = head(services, homeSectionSize)
		return nil
	})

	if err := g.Wait(); err != nil {
		s.log.Warn().Err(err).Msg("home page load failed")
		return nil, fmt.Errorf("load home: %w", err)
	}
	return &page, nil
}

// Filter narrows a listing the way the browse pages do.
type Filter struct {
	// Query matches a case-insensitive substring of the name.
	Query string
	// PetType matches the related pet's name; "" or AllPetTypes match any.
	PetType string
	// MinPrice and MaxPrice bound the price inclusively. A zero MaxPrice
	// means no upper bound.
	MinPrice float64
	MaxPrice float64
}

func (f Filter) match(name, petName string, price float64) bool {
	if f.Query != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(f.Query)) {
		return false
	}
	if f.PetType != "" && f.PetType != AllPetTypes && petName != f.PetType {
		return false
	}
	if price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && price > f.MaxPrice {
		return false
	}
	return true
}

func FilterServices(items []domain.Service, f Filter) []domain.Service {
	out := make([]domain.Service, 0, len(items))
	for _, it := range items {
		if f.match(it.Name, it.PetName(), it.Price) {
			out = append(out, it)
		}
	}
	return out
}

func FilterProducts(items []domain.Product, f Filter) []domain.Product {
	out := make([]domain.Product, 0, len(items))
	for _, it := range items {
		if f.match(it.Name, it.PetName(), it.Price) {
			out = append(out, it)
		}
	}
	return out
}

// ServicePetTypes lists the distinct pet names of services in first-seen order.
func ServicePetTypes(items []domain.Service) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.PetName())
	}
	return distinct(names)
}

// ProductPetTypes lists the distinct pet names of products in first-seen order.
func ProductPetTypes(items []domain.Product) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.PetName())
	}
	return distinct(names)
}

func distinct(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
