package service

import (
	"context"
	"io"

	"food-catalog/catalog-svc/internal/domain"
)

// ReferenceStore resolves the entities a restaurant points at. Missing rows
// are reported as domain.ErrNotFound.
type ReferenceStore interface {
	GetKitchen(ctx context.Context, id int64) (*domain.Kitchen, error)
	GetCity(ctx context.Context, id int64) (*domain.City, error)
}

type KitchenStore interface {
	ListKitchens(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Kitchen], error)
	SaveKitchen(ctx context.Context, kitchen *domain.Kitchen) error
	DeleteKitchen(ctx context.Context, id int64) (int64, error)
}

type RestaurantStore interface {
	// FindRestaurantByCode locks the row when called on a transaction-bound store.
	FindRestaurantByCode(ctx context.Context, code string) (*domain.Restaurant, error)
	FindRestaurantsByCodes(ctx context.Context, codes []string) ([]domain.Restaurant, error)
	FindRestaurantsByKitchen(ctx context.Context, kitchenID int64) ([]domain.Restaurant, error)
	SearchRestaurants(ctx context.Context, nameFragment string, req domain.PageRequest) (domain.Page[domain.Restaurant], error)
	ListRestaurantsWithFreeDelivery(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Restaurant], error)
	SaveRestaurant(ctx context.Context, restaurant *domain.Restaurant) error
	DeleteRestaurantByCode(ctx context.Context, code string) (int64, error)
}

type ProductStore interface {
	ListProducts(ctx context.Context, restaurantID int64, includeInactive bool) ([]domain.Product, error)
	FindProduct(ctx context.Context, restaurantID, productID int64) (*domain.Product, error)
	SaveProduct(ctx context.Context, product *domain.Product) error
	FindPhoto(ctx context.Context, productID int64) (*domain.ProductPhoto, error)
	SavePhoto(ctx context.Context, photo *domain.ProductPhoto) error
}

// Store is the entity store. WithinTx runs fn against a store bound to one
// transaction; fn returning an error rolls every write back.
type Store interface {
	ReferenceStore
	KitchenStore
	RestaurantStore
	ProductStore
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}

// RestaurantCache is versioned per code. Get reports the version it saw,
// Set stores only while that version is still current and Invalidate moves
// it forward, so a read that raced a commit cannot put an old copy back.
type RestaurantCache interface {
	Get(ctx context.Context, code string) (*domain.Restaurant, int64, error)
	Set(ctx context.Context, restaurant *domain.Restaurant, version int64) error
	Invalidate(ctx context.Context, codes ...string) error
}

type LifecyclePublisher interface {
	PublishLifecycle(ctx context.Context, events ...domain.LifecycleEvent) error
}

type PhotoStorage interface {
	Store(ctx context.Context, fileName string, content io.Reader) error
	Remove(ctx context.Context, fileName string) error
}

type QRGenerator interface {
	Generate(code string) ([]byte, error)
}

type RestaurantServiceInterface interface {
	FindByCode(ctx context.Context, code string) (*domain.Restaurant, error)
	FindAll(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Restaurant], error)
	FindByLikeName(ctx context.Context, fragment string, req domain.PageRequest) (domain.Page[domain.Restaurant], error)
	FindWithFreeDelivery(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Restaurant], error)
	Create(ctx context.Context, input domain.RestaurantInput) (*domain.Restaurant, error)
	Update(ctx context.Context, code string, input domain.RestaurantInput) (*domain.Restaurant, error)
	Activate(ctx context.Context, code string) error
	Inactivate(ctx context.Context, code string) error
	ActivateMultiples(ctx context.Context, codes []string) error
	InactivateMultiples(ctx context.Context, codes []string) error
	Open(ctx context.Context, code string) error
	Close(ctx context.Context, code string) error
	UpdateAddress(ctx context.Context, code string, input domain.AddressInput) (*domain.Restaurant, error)
	DeleteByCode(ctx context.Context, code string) error
	QRCode(ctx context.Context, code string) ([]byte, error)
}

type KitchenServiceInterface interface {
	FindByID(ctx context.Context, id int64) (*domain.Kitchen, error)
	FindAll(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Kitchen], error)
	FindRestaurants(ctx context.Context, id int64) ([]domain.Restaurant, error)
	Create(ctx context.Context, input domain.KitchenInput) (*domain.Kitchen, error)
	Update(ctx context.Context, id int64, input domain.KitchenInput) (*domain.Kitchen, error)
	DeleteByID(ctx context.Context, id int64) error
}

type ProductServiceInterface interface {
	List(ctx context.Context, restaurantCode string, includeInactive bool) ([]domain.Product, error)
	FindByID(ctx context.Context, restaurantCode string, productID int64) (*domain.Product, error)
	Create(ctx context.Context, restaurantCode string, input domain.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, restaurantCode string, productID int64, input domain.ProductInput) (*domain.Product, error)
	FindPhoto(ctx context.Context, restaurantCode string, productID int64) (*domain.ProductPhoto, error)
	SavePhoto(ctx context.Context, restaurantCode string, productID int64, upload PhotoUpload) (*domain.ProductPhoto, error)
}

var (
	_ RestaurantServiceInterface = (*RestaurantService)(nil)
	_ KitchenServiceInterface    = (*KitchenService)(nil)
	_ ProductServiceInterface    = (*ProductService)(nil)
)
