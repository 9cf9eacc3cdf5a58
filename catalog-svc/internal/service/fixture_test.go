package service_test

import (
	"context"
	"testing"

	"food-catalog/catalog-svc/internal/domain"
	"food-catalog/catalog-svc/internal/service"
	"food-catalog/catalog-svc/internal/storage"
	"food-catalog/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc     *service.RestaurantService
	store   *storage.MemoryStore
	kitchen domain.Kitchen
	other   domain.Kitchen
	city    domain.City
}

func newFixture(t *testing.T, cache service.RestaurantCache, publisher service.LifecyclePublisher, qr service.QRGenerator) *fixture {
	t.Helper()
	store := storage.NewMemoryStore()
	f := &fixture{
		store:   store,
		kitchen: store.SeedKitchen("Italian"),
		other:   store.SeedKitchen("Thai"),
		city:    store.SeedCity("Uberlandia", "Minas Gerais"),
	}
	f.svc = service.NewRestaurantService(store, cache, publisher, qr, logger.NewNop())
	return f
}

func (f *fixture) input(name string, fee string) domain.RestaurantInput {
	return domain.RestaurantInput{
		Name:        name,
		ShippingFee: decimal.RequireFromString(fee),
		KitchenID:   f.kitchen.ID,
		Address: domain.AddressInput{
			ZipCode:  "38400-000",
			Street:   "Av. Brasil",
			Number:   "100",
			District: "Centro",
			CityID:   f.city.ID,
		},
	}
}

// create stores a restaurant with a fixed code.
func (f *fixture) create(t *testing.T, code, name, fee string) *domain.Restaurant {
	t.Helper()
	service.SetCodeGenerator(f.svc, func() string { return code })
	r, err := f.svc.Create(context.Background(), f.input(name, fee))
	require.NoError(t, err)
	return r
}

func (f *fixture) get(t *testing.T, code string) *domain.Restaurant {
	t.Helper()
	r, err := f.store.FindRestaurantByCode(context.Background(), code)
	require.NoError(t, err)
	return r
}
