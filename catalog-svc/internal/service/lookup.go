package service

import (
	"context"
	"errors"

	"food-catalog/catalog-svc/internal/domain"
)

// LookupResolver turns kitchen and city ids from an input into entities.
// A missing entity is reported as domain.ErrReferenceNotFound; other store
// errors pass through untouched. No caching, no retries.
type LookupResolver struct {
	store ReferenceStore
}

func NewLookupResolver(store ReferenceStore) LookupResolver {
	return LookupResolver{store: store}
}

func (l LookupResolver) KitchenByID(ctx context.Context, id int64) (*domain.Kitchen, error) {
	kitchen, err := l.store.GetKitchen(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.KitchenNotFound(id)
	}
	if err != nil {
		return nil, err
	}
	return kitchen, nil
}

func (l LookupResolver) CityByID(ctx context.Context, id int64) (*domain.City, error) {
	city, err := l.store.GetCity(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.CityNotFound(id)
	}
	if err != nil {
		return nil, err
	}
	return city, nil
}
