package mocks

import (
	context "context"

	domain "food-catalog/catalog-svc/internal/domain"
	service "food-catalog/catalog-svc/internal/service"

	mock "github.com/stretchr/testify/mock"
)

// RestaurantServiceInterface is a mock type for the RestaurantServiceInterface type
type RestaurantServiceInterface struct {
	mock.Mock
}

func (_m *RestaurantServiceInterface) restaurant(ret mock.Arguments) (*domain.Restaurant, error) {
	var r0 *domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (_m *RestaurantServiceInterface) page(ret mock.Arguments) (domain.Page[domain.Restaurant], error) {
	var r0 domain.Page[domain.Restaurant]
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.Page[domain.Restaurant])
	}
	return r0, ret.Error(1)
}

func (_m *RestaurantServiceInterface) FindByCode(ctx context.Context, code string) (*domain.Restaurant, error) {
	return _m.restaurant(_m.Called(ctx, code))
}

func (_m *RestaurantServiceInterface) FindAll(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Restaurant], error) {
	return _m.page(_m.Called(ctx, req))
}

func (_m *RestaurantServiceInterface) FindByLikeName(ctx context.Context, fragment string, req domain.PageRequest) (domain.Page[domain.Restaurant], error) {
	return _m.page(_m.Called(ctx, fragment, req))
}

func (_m *RestaurantServiceInterface) FindWithFreeDelivery(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Restaurant], error) {
	return _m.page(_m.Called(ctx, req))
}

func (_m *RestaurantServiceInterface) Create(ctx context.Context, input domain.RestaurantInput) (*domain.Restaurant, error) {
	return _m.restaurant(_m.Called(ctx, input))
}

func (_m *RestaurantServiceInterface) Update(ctx context.Context, code string, input domain.RestaurantInput) (*domain.Restaurant, error) {
	return _m.restaurant(_m.Called(ctx, code, input))
}

func (_m *RestaurantServiceInterface) Activate(ctx context.Context, code string) error {
	return _m.Called(ctx, code).Error(0)
}

func (_m *RestaurantServiceInterface) Inactivate(ctx context.Context, code string) error {
	return _m.Called(ctx, code).Error(0)
}

func (_m *RestaurantServiceInterface) ActivateMultiples(ctx context.Context, codes []string) error {
	return _m.Called(ctx, codes).Error(0)
}

func (_m *RestaurantServiceInterface) InactivateMultiples(ctx context.Context, codes []string) error {
	return _m.Called(ctx, codes).Error(0)
}

func (_m *RestaurantServiceInterface) Open(ctx context.Context, code string) error {
	return _m.Called(ctx, code).Error(0)
}

func (_m *RestaurantServiceInterface) Close(ctx context.Context, code string) error {
	return _m.Called(ctx, code).Error(0)
}

func (_m *RestaurantServiceInterface) UpdateAddress(ctx context.Context, code string, input domain.AddressInput) (*domain.Restaurant, error) {
	return _m.restaurant(_m.Called(ctx, code, input))
}

func (_m *RestaurantServiceInterface) DeleteByCode(ctx context.Context, code string) error {
	return _m.Called(ctx, code).Error(0)
}

func (_m *RestaurantServiceInterface) QRCode(ctx context.Context, code string) ([]byte, error) {
	ret := _m.Called(ctx, code)
	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

// NewRestaurantServiceInterface creates a new instance of RestaurantServiceInterface. It also registers a cleanup function to assert the mocks expectations.
func NewRestaurantServiceInterface(t testingT) *RestaurantServiceInterface {
	m := &RestaurantServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// KitchenServiceInterface is a mock type for the KitchenServiceInterface type
type KitchenServiceInterface struct {
	mock.Mock
}

func (_m *KitchenServiceInterface) kitchen(ret mock.Arguments) (*domain.Kitchen, error) {
	var r0 *domain.Kitchen
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Kitchen)
	}
	return r0, ret.Error(1)
}

func (_m *KitchenServiceInterface) FindByID(ctx context.Context, id int64) (*domain.Kitchen, error) {
	return _m.kitchen(_m.Called(ctx, id))
}

func (_m *KitchenServiceInterface) FindAll(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Kitchen], error) {
	ret := _m.Called(ctx, req)
	var r0 domain.Page[domain.Kitchen]
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.Page[domain.Kitchen])
	}
	return r0, ret.Error(1)
}

func (_m *KitchenServiceInterface) FindRestaurants(ctx context.Context, id int64) ([]domain.Restaurant, error) {
	ret := _m.Called(ctx, id)
	var r0 []domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (_m *KitchenServiceInterface) Create(ctx context.Context, input domain.KitchenInput) (*domain.Kitchen, error) {
	return _m.kitchen(_m.Called(ctx, input))
}

func (_m *KitchenServiceInterface) Update(ctx context.Context, id int64, input domain.KitchenInput) (*domain.Kitchen, error) {
	return _m.kitchen(_m.Called(ctx, id, input))
}

func (_m *KitchenServiceInterface) DeleteByID(ctx context.Context, id int64) error {
	return _m.Called(ctx, id).Error(0)
}

// NewKitchenServiceInterface creates a new instance of KitchenServiceInterface. It also registers a cleanup function to assert the mocks expectations.
func NewKitchenServiceInterface(t testingT) *KitchenServiceInterface {
	m := &KitchenServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// ProductServiceInterface is a mock type for the ProductServiceInterface type
type ProductServiceInterface struct {
	mock.Mock
}

func (_m *ProductServiceInterface) product(ret mock.Arguments) (*domain.Product, error) {
	var r0 *domain.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Product)
	}
	return r0, ret.Error(1)
}

func (_m *ProductServiceInterface) List(ctx context.Context, restaurantCode string, includeInactive bool) ([]domain.Product, error) {
	ret := _m.Called(ctx, restaurantCode, includeInactive)
	var r0 []domain.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Product)
	}
	return r0, ret.Error(1)
}

func (_m *ProductServiceInterface) FindByID(ctx context.Context, restaurantCode string, productID int64) (*domain.Product, error) {
	return _m.product(_m.Called(ctx, restaurantCode, productID))
}

func (_m *ProductServiceInterface) Create(ctx context.Context, restaurantCode string, input domain.ProductInput) (*domain.Product, error) {
	return _m.product(_m.Called(ctx, restaurantCode, input))
}

func (_m *ProductServiceInterface) Update(ctx context.Context, restaurantCode string, productID int64, input domain.ProductInput) (*domain.Product, error) {
	return _m.product(_m.Called(ctx, restaurantCode, productID, input))
}

func (_m *ProductServiceInterface) FindPhoto(ctx context.Context, restaurantCode string, productID int64) (*domain.ProductPhoto, error) {
	ret := _m.Called(ctx, restaurantCode, productID)
	var r0 *domain.ProductPhoto
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.ProductPhoto)
	}
	return r0, ret.Error(1)
}

func (_m *ProductServiceInterface) SavePhoto(ctx context.Context, restaurantCode string, productID int64, upload service.PhotoUpload) (*domain.ProductPhoto, error) {
	ret := _m.Called(ctx, restaurantCode, productID, upload)
	var r0 *domain.ProductPhoto
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.ProductPhoto)
	}
	return r0, ret.Error(1)
}

// NewProductServiceInterface creates a new instance of ProductServiceInterface. It also registers a cleanup function to assert the mocks expectations.
func NewProductServiceInterface(t testingT) *ProductServiceInterface {
	m := &ProductServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
