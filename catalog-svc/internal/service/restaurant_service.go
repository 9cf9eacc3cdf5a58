package service

import (
	"context"
	"errors"

	"food-catalog/catalog-svc/internal/domain"
	"food-catalog/catalog-svc/internal/metrics"
	"food-catalog/logger"

	"github.com/google/uuid"
)

type RestaurantService struct {
	store     Store
	cache     RestaurantCache
	publisher LifecyclePublisher
	qr        QRGenerator
	log       *logger.Logger
	newCode   func() string
}

// NewRestaurantService wires the lifecycle service. cache, publisher and qr
// may be nil.
func NewRestaurantService(store Store, cache RestaurantCache, publisher LifecyclePublisher, qr QRGenerator, log *logger.Logger) *RestaurantService {
	return &RestaurantService{
		store:     store,
		cache:     cache,
		publisher: publisher,
		qr:        qr,
		log:       log,
		newCode:   uuid.NewString,
	}
}

func (s *RestaurantService) FindByCode(ctx context.Context, code string) (*domain.Restaurant, error) {
	var version int64
	if s.cache != nil {
		cached, seen, err := s.cache.Get(ctx, code)
		if err == nil && cached != nil {
			return cached, nil
		}
		version = seen
	}

	restaurant, err := s.store.FindRestaurantByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, restaurant, version); err != nil {
			s.log.Debug("restaurant cache fill failed", "code", code, "error", err)
		}
	}
	return restaurant, nil
}

func (s *RestaurantService) FindAll(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Restaurant], error) {
	return s.store.SearchRestaurants(ctx, "", req.Normalize())
}

func (s *RestaurantService) FindByLikeName(ctx context.Context, fragment string, req domain.PageRequest) (domain.Page[domain.Restaurant], error) {
	return s.store.SearchRestaurants(ctx, fragment, req.Normalize())
}

func (s *RestaurantService) FindWithFreeDelivery(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Restaurant], error) {
	return s.store.ListRestaurantsWithFreeDelivery(ctx, req.Normalize())
}

func (s *RestaurantService) Create(ctx context.Context, input domain.RestaurantInput) (*domain.Restaurant, error) {
	var created *domain.Restaurant
	err := s.store.WithinTx(ctx, func(tx Store) error {
		kitchen, city, err := resolveReferences(ctx, tx, input)
		if err != nil {
			return err
		}

		restaurant := &domain.Restaurant{Code: s.newCode()}
		restaurant.Apply(input, *kitchen, *city)
		if err := tx.SaveRestaurant(ctx, restaurant); err != nil {
			return err
		}
		created = restaurant
		return nil
	})
	if err != nil {
		return nil, s.fail("create", err)
	}

	s.committed(ctx, domain.EventRestaurantCreated, created)
	return created, nil
}

func (s *RestaurantService) Update(ctx context.Context, code string, input domain.RestaurantInput) (*domain.Restaurant, error) {
	return s.mutate(ctx, code, domain.EventRestaurantUpdated, func(tx Store, r *domain.Restaurant) error {
		kitchen, city, err := resolveReferences(ctx, tx, input)
		if err != nil {
			return err
		}
		r.Apply(input, *kitchen, *city)
		return nil
	})
}

func (s *RestaurantService) Activate(ctx context.Context, code string) error {
	_, err := s.mutate(ctx, code, domain.EventRestaurantActivated, func(_ Store, r *domain.Restaurant) error {
		r.Activate()
		return nil
	})
	return err
}

func (s *RestaurantService) Inactivate(ctx context.Context, code string) error {
	_, err := s.mutate(ctx, code, domain.EventRestaurantInactivated, func(_ Store, r *domain.Restaurant) error {
		r.Inactivate()
		return nil
	})
	return err
}

func (s *RestaurantService) ActivateMultiples(ctx context.Context, codes []string) error {
	return s.batch(ctx, "activation", codes, domain.EventRestaurantActivated, (*domain.Restaurant).Activate)
}

func (s *RestaurantService) InactivateMultiples(ctx context.Context, codes []string) error {
	return s.batch(ctx, "inactivation", codes, domain.EventRestaurantInactivated, (*domain.Restaurant).Inactivate)
}

func (s *RestaurantService) Open(ctx context.Context, code string) error {
	_, err := s.mutate(ctx, code, domain.EventRestaurantOpened, func(_ Store, r *domain.Restaurant) error {
		return r.Open()
	})
	return err
}

func (s *RestaurantService) Close(ctx context.Context, code string) error {
	_, err := s.mutate(ctx, code, domain.EventRestaurantClosed, func(_ Store, r *domain.Restaurant) error {
		r.Close()
		return nil
	})
	return err
}

func (s *RestaurantService) UpdateAddress(ctx context.Context, code string, input domain.AddressInput) (*domain.Restaurant, error) {
	return s.mutate(ctx, code, domain.EventRestaurantAddressUpdated, func(tx Store, r *domain.Restaurant) error {
		city, err := NewLookupResolver(tx).CityByID(ctx, input.CityID)
		if err != nil {
			return err
		}
		r.Address = input.ToAddress(*city)
		return nil
	})
}

func (s *RestaurantService) DeleteByCode(ctx context.Context, code string) error {
	var deleted *domain.Restaurant
	err := s.store.WithinTx(ctx, func(tx Store) error {
		restaurant, err := tx.FindRestaurantByCode(ctx, code)
		if err != nil {
			return err
		}
		rows, err := tx.DeleteRestaurantByCode(ctx, code)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.RestaurantNotFound(code)
		}
		deleted = restaurant
		return nil
	})
	if err != nil {
		return s.fail("delete", err)
	}

	deleted.IsActive, deleted.IsOpen = false, false
	s.committed(ctx, domain.EventRestaurantDeleted, deleted)
	return nil
}

func (s *RestaurantService) QRCode(ctx context.Context, code string) ([]byte, error) {
	if s.qr == nil {
		return nil, errors.New("qr code generation is not configured")
	}
	restaurant, err := s.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.qr.Generate(restaurant.Code)
}

// mutate loads one restaurant inside a transaction, applies fn and saves it.
func (s *RestaurantService) mutate(ctx context.Context, code, eventType string, fn func(tx Store, r *domain.Restaurant) error) (*domain.Restaurant, error) {
	var updated *domain.Restaurant
	err := s.store.WithinTx(ctx, func(tx Store) error {
		restaurant, err := tx.FindRestaurantByCode(ctx, code)
		if err != nil {
			return err
		}
		if err := fn(tx, restaurant); err != nil {
			return err
		}
		if err := tx.SaveRestaurant(ctx, restaurant); err != nil {
			return err
		}
		updated = restaurant
		return nil
	})
	if err != nil {
		return nil, s.fail(eventType, err)
	}

	s.committed(ctx, eventType, updated)
	return updated, nil
}

// batch applies fn to every named restaurant in one transaction. If any code
// does not resolve nothing is written.
func (s *RestaurantService) batch(ctx context.Context, name string, codes []string, eventType string, fn func(*domain.Restaurant)) error {
	unique := uniqueCodes(codes)
	if len(unique) == 0 {
		return nil
	}

	var changed []*domain.Restaurant
	err := s.store.WithinTx(ctx, func(tx Store) error {
		found, err := tx.FindRestaurantsByCodes(ctx, unique)
		if err != nil {
			return err
		}
		if len(found) != len(unique) {
			return domain.NewBusinessRuleViolation("batch %s rejected: one or more restaurants could not be found", name)
		}

		for i := range found {
			restaurant := &found[i]
			fn(restaurant)
			if err := tx.SaveRestaurant(ctx, restaurant); err != nil {
				return err
			}
			changed = append(changed, restaurant)
		}
		return nil
	})
	if err != nil {
		return s.fail("batch "+name, err, "batch_size", len(unique))
	}

	s.committed(ctx, eventType, changed...)
	return nil
}

func (s *RestaurantService) committed(ctx context.Context, eventType string, restaurants ...*domain.Restaurant) {
	codes := make([]string, 0, len(restaurants))
	events := make([]domain.LifecycleEvent, 0, len(restaurants))
	for _, r := range restaurants {
		codes = append(codes, r.Code)
		events = append(events, domain.NewLifecycleEvent(eventType, r))
	}

	metrics.RecordLifecycleTransition(eventType, len(restaurants))
	s.log.Info("restaurant lifecycle transition committed", "type", eventType, "codes", codes)

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, codes...); err != nil {
			s.log.Warn("restaurant cache invalidation failed", "codes", codes, "error", err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishLifecycle(ctx, events...); err != nil {
			s.log.Warn("lifecycle event publish failed", "type", eventType, "error", err)
		}
	}
}

// fail maps an error raised during a write into what the caller sees.
func (s *RestaurantService) fail(op string, err error, keysAndValues ...interface{}) error {
	kv := append([]interface{}{"op", op, "error", err}, keysAndValues...)
	if isDomainRejection(err) {
		s.log.Info("restaurant mutation rejected", kv...)
	} else {
		s.log.Error("restaurant mutation failed", kv...)
	}
	return asBusinessError(err)
}

func isDomainRejection(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrReferenceNotFound) ||
		errors.Is(err, domain.ErrInvalidState) ||
		errors.Is(err, domain.ErrEntityInUse) ||
		domain.IsBusinessRuleViolation(err)
}

// asBusinessError re-signals not-found conditions met during a write as a
// BusinessRuleViolation that carries the original message only.
func asBusinessError(err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrReferenceNotFound) {
		return &domain.BusinessRuleViolation{Message: err.Error()}
	}
	return err
}

func resolveReferences(ctx context.Context, store ReferenceStore, input domain.RestaurantInput) (*domain.Kitchen, *domain.City, error) {
	lookup := NewLookupResolver(store)
	kitchen, err := lookup.KitchenByID(ctx, input.KitchenID)
	if err != nil {
		return nil, nil, err
	}
	city, err := lookup.CityByID(ctx, input.Address.CityID)
	if err != nil {
		return nil, nil, err
	}
	return kitchen, city, nil
}

func uniqueCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	unique := make([]string, 0, len(codes))
	for _, code := range codes {
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		unique = append(unique, code)
	}
	return unique
}
