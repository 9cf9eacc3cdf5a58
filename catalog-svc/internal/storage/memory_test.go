package storage

import (
	"context"
	"errors"
	"testing"

	"food-catalog/catalog-svc/internal/domain"
	"food-catalog/catalog-svc/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededRestaurant(t *testing.T, s *MemoryStore, code, name, fee string) *domain.Restaurant {
	t.Helper()
	kitchen := s.SeedKitchen("Italian")
	city := s.SeedCity("Uberlandia", "Minas Gerais")
	r := &domain.Restaurant{
		Code:        code,
		Name:        name,
		ShippingFee: decimal.RequireFromString(fee),
		Kitchen:     kitchen,
		Address:     domain.Address{ZipCode: "1", Street: "s", Number: "1", District: "d", City: city},
	}
	require.NoError(t, s.SaveRestaurant(context.Background(), r))
	return r
}

func TestMemoryStore_TxRollbackLeavesNoTrace(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	r := seededRestaurant(t, s, "a", "A", "1")

	boom := errors.New("abort")
	err := s.WithinTx(ctx, func(tx service.Store) error {
		loaded, err := tx.FindRestaurantByCode(ctx, "a")
		require.NoError(t, err)
		loaded.Activate()
		require.NoError(t, tx.SaveRestaurant(ctx, loaded))
		require.NoError(t, tx.SaveKitchen(ctx, &domain.Kitchen{Name: "Thai"}))

		seen, err := tx.FindRestaurantByCode(ctx, "a")
		require.NoError(t, err)
		assert.True(t, seen.IsActive, "writes are visible inside the transaction")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	after, err := s.FindRestaurantByCode(ctx, r.Code)
	require.NoError(t, err)
	assert.False(t, after.IsActive)

	kitchens, err := s.ListKitchens(ctx, domain.PageRequest{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), kitchens.TotalElements)
}

func TestMemoryStore_TxCommit(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	seededRestaurant(t, s, "a", "A", "1")

	err := s.WithinTx(ctx, func(tx service.Store) error {
		return tx.WithinTx(ctx, func(inner service.Store) error {
			loaded, err := inner.FindRestaurantByCode(ctx, "a")
			if err != nil {
				return err
			}
			loaded.Activate()
			return inner.SaveRestaurant(ctx, loaded)
		})
	})
	require.NoError(t, err)

	after, err := s.FindRestaurantByCode(ctx, "a")
	require.NoError(t, err)
	assert.True(t, after.IsActive)
}

func TestMemoryStore_TxHonorsCanceledContext(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.WithinTx(ctx, func(service.Store) error { return nil })

	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore_SaveRestaurantRejectsOpenInactive(t *testing.T) {
	s := NewMemoryStore()
	r := seededRestaurant(t, s, "a", "A", "1")
	r.IsOpen = true

	err := s.SaveRestaurant(context.Background(), r)

	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestMemoryStore_SaveRestaurantRejectsDuplicateCode(t *testing.T) {
	s := NewMemoryStore()
	seededRestaurant(t, s, "a", "A", "1")

	err := s.SaveRestaurant(context.Background(), &domain.Restaurant{Code: "a"})

	assert.ErrorContains(t, err, "already taken")
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	seededRestaurant(t, s, "a", "A", "1")

	loaded, err := s.FindRestaurantByCode(ctx, "a")
	require.NoError(t, err)
	loaded.Name = "mutated"

	again, err := s.FindRestaurantByCode(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "A", again.Name)
}

func TestMemoryStore_SearchAndPaging(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	seededRestaurant(t, s, "a", "Zeta", "0")
	seededRestaurant(t, s, "b", "alpha", "3")
	seededRestaurant(t, s, "c", "Beta", "0")

	page, err := s.SearchRestaurants(ctx, "ETA", domain.PageRequest{Size: 10, Sort: "name,desc"})
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "Zeta", page.Content[0].Name)

	page, err = s.SearchRestaurants(ctx, "", domain.PageRequest{Page: 1, Size: 2, Sort: "shipping_fee,desc"})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, "a", page.Content[0].Code)

	page, err = s.SearchRestaurants(ctx, "", domain.PageRequest{Page: 5, Size: 2})
	require.NoError(t, err)
	assert.Empty(t, page.Content)

	free, err := s.ListRestaurantsWithFreeDelivery(ctx, domain.PageRequest{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), free.TotalElements)
}

func TestMemoryStore_DeleteRules(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	r := seededRestaurant(t, s, "a", "A", "1")

	_, err := s.DeleteKitchen(ctx, r.Kitchen.ID)
	assert.ErrorIs(t, err, domain.ErrEntityInUse)

	require.NoError(t, s.SaveProduct(ctx, &domain.Product{RestaurantID: r.ID, Name: "p"}))
	_, err = s.DeleteRestaurantByCode(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrEntityInUse)

	rows, err := s.DeleteRestaurantByCode(ctx, "missing")
	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestMemoryStore_Photos(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	r := seededRestaurant(t, s, "a", "A", "1")
	p := &domain.Product{RestaurantID: r.ID, Name: "p"}
	require.NoError(t, s.SaveProduct(ctx, p))

	err := s.SavePhoto(ctx, &domain.ProductPhoto{ProductID: 999})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.SavePhoto(ctx, &domain.ProductPhoto{ProductID: p.ID, FileName: "one.png"}))
	require.NoError(t, s.SavePhoto(ctx, &domain.ProductPhoto{ProductID: p.ID, FileName: "two.png"}))

	photo, err := s.FindPhoto(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "two.png", photo.FileName)
}
