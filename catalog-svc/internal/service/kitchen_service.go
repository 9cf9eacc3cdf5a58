package service

import (
	"context"

	"food-catalog/catalog-svc/internal/domain"
	"food-catalog/logger"
)

type KitchenService struct {
	store Store
	cache RestaurantCache
	log   *logger.Logger
}

// NewKitchenService takes the restaurant cache because cached restaurants
// embed their kitchen. cache may be nil.
func NewKitchenService(store Store, cache RestaurantCache, log *logger.Logger) *KitchenService {
	return &KitchenService{store: store, cache: cache, log: log}
}

func (s *KitchenService) FindByID(ctx context.Context, id int64) (*domain.Kitchen, error) {
	return s.store.GetKitchen(ctx, id)
}

func (s *KitchenService) FindAll(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Kitchen], error) {
	return s.store.ListKitchens(ctx, req.Normalize())
}

// FindRestaurants walks the kitchen -> restaurant direction with a query
// instead of a back-reference on Kitchen.
func (s *KitchenService) FindRestaurants(ctx context.Context, id int64) ([]domain.Restaurant, error) {
	if _, err := s.store.GetKitchen(ctx, id); err != nil {
		return nil, err
	}
	return s.store.FindRestaurantsByKitchen(ctx, id)
}

func (s *KitchenService) Create(ctx context.Context, input domain.KitchenInput) (*domain.Kitchen, error) {
	kitchen := &domain.Kitchen{Name: input.Name}
	if err := s.store.SaveKitchen(ctx, kitchen); err != nil {
		return nil, err
	}
	s.log.Info("kitchen created", "kitchen_id", kitchen.ID)
	return kitchen, nil
}

func (s *KitchenService) Update(ctx context.Context, id int64, input domain.KitchenInput) (*domain.Kitchen, error) {
	var (
		updated *domain.Kitchen
		codes   []string
	)
	err := s.store.WithinTx(ctx, func(tx Store) error {
		kitchen, err := tx.GetKitchen(ctx, id)
		if err != nil {
			return err
		}
		kitchen.Name = input.Name
		if err := tx.SaveKitchen(ctx, kitchen); err != nil {
			return err
		}
		owned, err := tx.FindRestaurantsByKitchen(ctx, id)
		if err != nil {
			return err
		}
		for _, r := range owned {
			codes = append(codes, r.Code)
		}
		updated = kitchen
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil && len(codes) > 0 {
		if err := s.cache.Invalidate(ctx, codes...); err != nil {
			s.log.Warn("restaurant cache invalidation failed", "kitchen_id", id, "codes", codes, "error", err)
		}
	}
	return updated, nil
}

// DeleteByID refuses to remove a kitchen that restaurants still point at.
func (s *KitchenService) DeleteByID(ctx context.Context, id int64) error {
	return s.store.WithinTx(ctx, func(tx Store) error {
		if _, err := tx.GetKitchen(ctx, id); err != nil {
			return err
		}
		owned, err := tx.FindRestaurantsByKitchen(ctx, id)
		if err != nil {
			return err
		}
		if len(owned) > 0 {
			return domain.KitchenInUse(id, len(owned))
		}
		rows, err := tx.DeleteKitchen(ctx, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.NotFound("kitchen", id)
		}
		s.log.Info("kitchen deleted", "kitchen_id", id)
		return nil
	})
}
