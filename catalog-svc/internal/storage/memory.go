package storage

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"food-catalog/catalog-svc/internal/domain"
	"food-catalog/catalog-svc/internal/service"
)

type memoryState struct {
	kitchens    map[int64]domain.Kitchen
	cities      map[int64]domain.City
	restaurants map[int64]domain.Restaurant
	products    map[int64]domain.Product
	photos      map[int64]domain.ProductPhoto
	nextID      int64
}

func newMemoryState() *memoryState {
	return &memoryState{
		kitchens:    map[int64]domain.Kitchen{},
		cities:      map[int64]domain.City{},
		restaurants: map[int64]domain.Restaurant{},
		products:    map[int64]domain.Product{},
		photos:      map[int64]domain.ProductPhoto{},
	}
}

func (m *memoryState) clone() *memoryState {
	return &memoryState{
		kitchens:    maps.Clone(m.kitchens),
		cities:      maps.Clone(m.cities),
		restaurants: maps.Clone(m.restaurants),
		products:    maps.Clone(m.products),
		photos:      maps.Clone(m.photos),
		nextID:      m.nextID,
	}
}

func (m *memoryState) newID() int64 {
	m.nextID++
	return m.nextID
}

// MemoryStore keeps every entity in process memory. WithinTx works on a copy
// of the state and swaps it in on success, so a failed callback leaves
// nothing behind. Transactions are serialized.
type MemoryStore struct {
	mu    *sync.RWMutex
	state *memoryState
	inTx  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{mu: &sync.RWMutex{}, state: newMemoryState()}
}

var _ service.Store = (*MemoryStore)(nil)

func (s *MemoryStore) WithinTx(ctx context.Context, fn func(tx service.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &MemoryStore{mu: s.mu, state: s.state.clone(), inTx: true}
	if err := fn(tx); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

func (s *MemoryStore) read() (*memoryState, func()) {
	if s.inTx {
		return s.state, func() {}
	}
	s.mu.RLock()
	return s.state, s.mu.RUnlock
}

func (s *MemoryStore) write() (*memoryState, func()) {
	if s.inTx {
		return s.state, func() {}
	}
	s.mu.Lock()
	return s.state, s.mu.Unlock
}

// SeedKitchen and SeedCity fill the reference tables that have no write
// operations of their own.
func (s *MemoryStore) SeedKitchen(name string) domain.Kitchen {
	st, done := s.write()
	defer done()
	k := domain.Kitchen{ID: st.newID(), Name: name}
	st.kitchens[k.ID] = k
	return k
}

func (s *MemoryStore) SeedCity(name, state string) domain.City {
	st, done := s.write()
	defer done()
	c := domain.City{ID: st.newID(), Name: name, State: domain.State{ID: st.newID(), Name: state}}
	st.cities[c.ID] = c
	return c
}

// SeedDefaults loads a small reference data set for local runs.
func (s *MemoryStore) SeedDefaults() {
	for _, name := range []string{"Thai", "Indian", "Italian", "Brazilian"} {
		s.SeedKitchen(name)
	}
	s.SeedCity("Uberlandia", "Minas Gerais")
	s.SeedCity("Belo Horizonte", "Minas Gerais")
	s.SeedCity("Sao Paulo", "Sao Paulo")
	s.SeedCity("Campinas", "Sao Paulo")
}

func (s *MemoryStore) GetKitchen(_ context.Context, id int64) (*domain.Kitchen, error) {
	st, done := s.read()
	defer done()
	k, ok := st.kitchens[id]
	if !ok {
		return nil, domain.NotFound("kitchen", id)
	}
	return &k, nil
}

func (s *MemoryStore) GetCity(_ context.Context, id int64) (*domain.City, error) {
	st, done := s.read()
	defer done()
	c, ok := st.cities[id]
	if !ok {
		return nil, domain.NotFound("city", id)
	}
	return &c, nil
}

func (s *MemoryStore) ListKitchens(_ context.Context, req domain.PageRequest) (domain.Page[domain.Kitchen], error) {
	st, done := s.read()
	defer done()

	kitchens := make([]domain.Kitchen, 0, len(st.kitchens))
	for _, k := range st.kitchens {
		kitchens = append(kitchens, k)
	}
	field, desc := sortKey(req.Sort)
	sort.SliceStable(kitchens, func(i, j int) bool {
		a, b := kitchens[i], kitchens[j]
		if field == "name" && a.Name != b.Name {
			return (a.Name < b.Name) != desc
		}
		return (a.ID < b.ID) != desc
	})
	return pageOf(kitchens, req), nil
}

func (s *MemoryStore) SaveKitchen(_ context.Context, kitchen *domain.Kitchen) error {
	st, done := s.write()
	defer done()
	if kitchen.ID == 0 {
		kitchen.ID = st.newID()
	} else if _, ok := st.kitchens[kitchen.ID]; !ok {
		return domain.NotFound("kitchen", kitchen.ID)
	}
	st.kitchens[kitchen.ID] = *kitchen
	return nil
}

func (s *MemoryStore) DeleteKitchen(_ context.Context, id int64) (int64, error) {
	st, done := s.write()
	defer done()
	if _, ok := st.kitchens[id]; !ok {
		return 0, nil
	}
	for _, r := range st.restaurants {
		if r.Kitchen.ID == id {
			return 0, fmt.Errorf("%w: kitchen %d is still referenced", domain.ErrEntityInUse, id)
		}
	}
	delete(st.kitchens, id)
	return 1, nil
}

// hydrate refreshes the referenced kitchen and city so renames show up on
// restaurants the same way a join would.
func (st *memoryState) hydrate(r domain.Restaurant) domain.Restaurant {
	if k, ok := st.kitchens[r.Kitchen.ID]; ok {
		r.Kitchen = k
	}
	if c, ok := st.cities[r.Address.City.ID]; ok {
		r.Address.City = c
	}
	return r
}

func (st *memoryState) byCode(code string) (domain.Restaurant, bool) {
	for _, r := range st.restaurants {
		if r.Code == code {
			return st.hydrate(r), true
		}
	}
	return domain.Restaurant{}, false
}

func (s *MemoryStore) FindRestaurantByCode(_ context.Context, code string) (*domain.Restaurant, error) {
	st, done := s.read()
	defer done()
	r, ok := st.byCode(code)
	if !ok {
		return nil, domain.RestaurantNotFound(code)
	}
	return &r, nil
}

func (s *MemoryStore) FindRestaurantsByCodes(_ context.Context, codes []string) ([]domain.Restaurant, error) {
	st, done := s.read()
	defer done()
	wanted := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		wanted[code] = struct{}{}
	}
	var found []domain.Restaurant
	for _, r := range st.restaurants {
		if _, ok := wanted[r.Code]; ok {
			found = append(found, st.hydrate(r))
		}
	}
	sortRestaurants(found, "id")
	return found, nil
}

func (s *MemoryStore) FindRestaurantsByKitchen(_ context.Context, kitchenID int64) ([]domain.Restaurant, error) {
	st, done := s.read()
	defer done()
	var found []domain.Restaurant
	for _, r := range st.restaurants {
		if r.Kitchen.ID == kitchenID {
			found = append(found, st.hydrate(r))
		}
	}
	sortRestaurants(found, "id")
	return found, nil
}

func (s *MemoryStore) SearchRestaurants(_ context.Context, nameFragment string, req domain.PageRequest) (domain.Page[domain.Restaurant], error) {
	fragment := strings.ToLower(nameFragment)
	return s.filterRestaurants(req, func(r domain.Restaurant) bool {
		return strings.Contains(strings.ToLower(r.Name), fragment)
	}), nil
}

func (s *MemoryStore) ListRestaurantsWithFreeDelivery(_ context.Context, req domain.PageRequest) (domain.Page[domain.Restaurant], error) {
	return s.filterRestaurants(req, func(r domain.Restaurant) bool {
		return r.ShippingFee.IsZero()
	}), nil
}

func (s *MemoryStore) filterRestaurants(req domain.PageRequest, keep func(domain.Restaurant) bool) domain.Page[domain.Restaurant] {
	st, done := s.read()
	defer done()
	var matched []domain.Restaurant
	for _, r := range st.restaurants {
		if keep(r) {
			matched = append(matched, st.hydrate(r))
		}
	}
	sortRestaurants(matched, req.Sort)
	return pageOf(matched, req)
}

func (s *MemoryStore) SaveRestaurant(_ context.Context, rest *domain.Restaurant) error {
	if rest.IsOpen && !rest.IsActive {
		return fmt.Errorf("%w: restaurant %s cannot be open while inactive", domain.ErrInvalidState, rest.Code)
	}
	if rest.ShippingFee.IsNegative() {
		return fmt.Errorf("restaurant %s: negative shipping fee", rest.Code)
	}

	st, done := s.write()
	defer done()

	now := time.Now().UTC()
	if rest.ID == 0 {
		if _, taken := st.byCode(rest.Code); taken {
			return fmt.Errorf("restaurant code %s already taken", rest.Code)
		}
		rest.ID = st.newID()
		rest.CreatedAt = now
	} else if _, ok := st.restaurants[rest.ID]; !ok {
		return domain.RestaurantNotFound(rest.Code)
	}
	rest.UpdatedAt = now
	st.restaurants[rest.ID] = *rest
	return nil
}

func (s *MemoryStore) DeleteRestaurantByCode(_ context.Context, code string) (int64, error) {
	st, done := s.write()
	defer done()
	r, ok := st.byCode(code)
	if !ok {
		return 0, nil
	}
	for _, p := range st.products {
		if p.RestaurantID == r.ID {
			return 0, fmt.Errorf("%w: restaurant %s still has products", domain.ErrEntityInUse, code)
		}
	}
	delete(st.restaurants, r.ID)
	return 1, nil
}

func (s *MemoryStore) ListProducts(_ context.Context, restaurantID int64, includeInactive bool) ([]domain.Product, error) {
	st, done := s.read()
	defer done()
	products := []domain.Product{}
	for _, p := range st.products {
		if p.RestaurantID == restaurantID && (includeInactive || p.Active) {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (s *MemoryStore) FindProduct(_ context.Context, restaurantID, productID int64) (*domain.Product, error) {
	st, done := s.read()
	defer done()
	p, ok := st.products[productID]
	if !ok || p.RestaurantID != restaurantID {
		return nil, domain.NotFound("product", productID)
	}
	return &p, nil
}

func (s *MemoryStore) SaveProduct(_ context.Context, product *domain.Product) error {
	st, done := s.write()
	defer done()
	if product.ID == 0 {
		product.ID = st.newID()
	}
	st.products[product.ID] = *product
	return nil
}

func (s *MemoryStore) FindPhoto(_ context.Context, productID int64) (*domain.ProductPhoto, error) {
	st, done := s.read()
	defer done()
	photo, ok := st.photos[productID]
	if !ok {
		return nil, domain.NotFound("photo for product", productID)
	}
	return &photo, nil
}

func (s *MemoryStore) SavePhoto(_ context.Context, photo *domain.ProductPhoto) error {
	st, done := s.write()
	defer done()
	if _, ok := st.products[photo.ProductID]; !ok {
		return domain.NotFound("product", photo.ProductID)
	}
	st.photos[photo.ProductID] = *photo
	return nil
}

func sortKey(sort string) (string, bool) {
	field, direction, _ := strings.Cut(sort, ",")
	return strings.TrimSpace(field), strings.EqualFold(strings.TrimSpace(direction), "desc")
}

func sortRestaurants(restaurants []domain.Restaurant, sortBy string) {
	field, desc := sortKey(sortBy)
	sort.SliceStable(restaurants, func(i, j int) bool {
		a, b := restaurants[i], restaurants[j]
		switch field {
		case "name":
			if a.Name != b.Name {
				return (a.Name < b.Name) != desc
			}
		case "shipping_fee":
			if !a.ShippingFee.Equal(b.ShippingFee) {
				return a.ShippingFee.LessThan(b.ShippingFee) != desc
			}
		case "created_at":
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt) != desc
			}
		}
		return (a.ID < b.ID) != desc
	})
}

func pageOf[T any](items []T, req domain.PageRequest) domain.Page[T] {
	total := int64(len(items))
	start := min(req.Offset(), len(items))
	end := min(start+req.Size, len(items))
	return domain.NewPage(items[start:end], req, total)
}
