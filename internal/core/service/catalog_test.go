package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawshop/storefront/internal/core/domain"
)

type stubCatalogAPI struct {
	pets     []domain.Pet
	products []domain.Product
	services []domain.Service
	sliders  []domain.Slider
	err      error
}

func (c *stubCatalogAPI) Pets(context.Context) ([]domain.Pet, error) { return c.pets, c.err }

func (c *stubCatalogAPI) Pet(_ context.Context, id int64) (*domain.Pet, error) {
	for _, p := range c.pets {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.NewError(domain.KindNotFound, "pet not found")
}

func (c *stubCatalogAPI) Products(context.Context) ([]domain.Product, error) {
	return c.products, c.err
}

func (c *stubCatalogAPI) Product(_ context.Context, id int64) (*domain.Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.NewError(domain.KindNotFound, "product not found")
}

func (c *stubCatalogAPI) Services(context.Context) ([]domain.Service, error) {
	return c.services, c.err
}

func (c *stubCatalogAPI) Service(_ context.Context, id int64) (*domain.Service, error) {
	for _, s := range c.services {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, domain.NewError(domain.KindNotFound, "service not found")
}

func (c *stubCatalogAPI) Sliders(context.Context) ([]domain.Slider, error) {
	return c.sliders, c.err
}

var (
	cats = &domain.Pet{ID: 1, Name: "Cat"}
	dogs = &domain.Pet{ID: 2, Name: "Dog"}

	groomingCat = domain.Service{ID: 1, Name: "Cat Grooming", Price: 75000, Pet: cats}
	groomingDog = domain.Service{ID: 2, Name: "Dog Grooming", Price: 120000, Pet: dogs}
	boardingDog = domain.Service{ID: 3, Name: "Dog Boarding", Price: 200000, Pet: dogs}
	vaccineCat  = domain.Service{ID: 4, Name: "Vaccination", Price: 150000, Pet: cats}
)

func TestCatalog_HomeTakesFirstThree(t *testing.T) {
	api := &stubCatalogAPI{
		pets:     []domain.Pet{*cats, *dogs},
		services: []domain.Service{groomingCat, groomingDog, boardingDog, vaccineCat},
		products: []domain.Product{catFood, dogToy},
	}
	svc := NewCatalogService(api, zerolog.Nop())

	page, err := svc.Home(context.Background())
	require.NoError(t, err)

	assert.Len(t, page.Pets, 2)
	assert.Len(t, page.Products, 2)
	require.Len(t, page.Services, 3)
	assert.Equal(t, int64(3), page.Services[2].ID)
}

func TestCatalog_HomeFailsAsAWhole(t *testing.T) {
	api := &stubCatalogAPI{err: &domain.Error{Kind: domain.KindNetwork}}
	svc := NewCatalogService(api, zerolog.Nop())

	_, err := svc.Home(context.Background())
	require.ErrorIs(t, err, domain.ErrNetwork)
}

func TestCatalog_SlidersActiveAndOrdered(t *testing.T) {
	api := &stubCatalogAPI{sliders: []domain.Slider{
		{ID: 1, Title: "late", IsActive: true, Order: 3},
		{ID: 2, Title: "hidden", IsActive: false, Order: 0},
		{ID: 3, Title: "first", IsActive: true, Order: 1},
	}}
	svc := NewCatalogService(api, zerolog.Nop())

	sliders, err := svc.Sliders(context.Background())
	require.NoError(t, err)

	require.Len(t, sliders, 2)
	assert.Equal(t, "first", sliders[0].Title)
	assert.Equal(t, "late", sliders[1].Title)
}

func TestCatalog_NotFoundKeepsKind(t *testing.T) {
	svc := NewCatalogService(&stubCatalogAPI{}, zerolog.Nop())

	_, err := svc.Product(context.Background(), 42)
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestFilterServices(t *testing.T) {
	all := []domain.Service{groomingCat, groomingDog, boardingDog, vaccineCat}

	cases := []struct {
		name   string
		filter Filter
		want   []int64
	}{
		{"no filter", Filter{}, []int64{1, 2, 3, 4}},
		{"all pet types", Filter{PetType: AllPetTypes}, []int64{1, 2, 3, 4}},
		{"query is case-insensitive", Filter{Query: "GROOM"}, []int64{1, 2}},
		{"pet type", Filter{PetType: "Dog"}, []int64{2, 3}},
		{"min price", Filter{MinPrice: 150000}, []int64{3, 4}},
		{"price range inclusive", Filter{MinPrice: 75000, MaxPrice: 120000}, []int64{1, 2}},
		{"combined", Filter{Query: "dog", PetType: "Dog", MaxPrice: 150000}, []int64{2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterServices(all, tc.filter)
			ids := make([]int64, 0, len(got))
			for _, s := range got {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestFilterProducts_ByPetType(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Name: "Cat Food", Price: 50000, Pet: cats},
		{ID: 2, Name: "Dog Toy", Price: 10000, Pet: dogs},
		{ID: 3, Name: "Leash", Price: 30000},
	}

	got := FilterProducts(products, Filter{PetType: "Cat"})
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestPetTypes_DistinctInFirstSeenOrder(t *testing.T) {
	services := []domain.Service{groomingDog, groomingCat, boardingDog, {ID: 9, Name: "Unlinked"}}
	assert.Equal(t, []string{"Dog", "Cat"}, ServicePetTypes(services))

	products := []domain.Product{{Pet: cats}, {Pet: cats}}
	assert.Equal(t, []string{"Cat"}, ProductPetTypes(products))
}
