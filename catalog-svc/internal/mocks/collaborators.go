package mocks

import (
	context "context"
	io "io"

	domain "food-catalog/catalog-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// RestaurantCache is a mock type for the RestaurantCache type
type RestaurantCache struct {
	mock.Mock
}

func (_m *RestaurantCache) Get(ctx context.Context, code string) (*domain.Restaurant, int64, error) {
	ret := _m.Called(ctx, code)

	var r0 *domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Restaurant)
	}
	return r0, ret.Get(1).(int64), ret.Error(2)
}

func (_m *RestaurantCache) Set(ctx context.Context, restaurant *domain.Restaurant, version int64) error {
	ret := _m.Called(ctx, restaurant, version)
	return ret.Error(0)
}

func (_m *RestaurantCache) Invalidate(ctx context.Context, codes ...string) error {
	ret := _m.Called(ctx, codes)
	return ret.Error(0)
}

// NewRestaurantCache creates a new instance of RestaurantCache. It also registers a cleanup function to assert the mocks expectations.
func NewRestaurantCache(t testingT) *RestaurantCache {
	m := &RestaurantCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// LifecyclePublisher is a mock type for the LifecyclePublisher type
type LifecyclePublisher struct {
	mock.Mock
}

func (_m *LifecyclePublisher) PublishLifecycle(ctx context.Context, events ...domain.LifecycleEvent) error {
	ret := _m.Called(ctx, events)
	return ret.Error(0)
}

// NewLifecyclePublisher creates a new instance of LifecyclePublisher. It also registers a cleanup function to assert the mocks expectations.
func NewLifecyclePublisher(t testingT) *LifecyclePublisher {
	m := &LifecyclePublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// PhotoStorage is a mock type for the PhotoStorage type
type PhotoStorage struct {
	mock.Mock
}

func (_m *PhotoStorage) Store(ctx context.Context, fileName string, content io.Reader) error {
	ret := _m.Called(ctx, fileName, content)
	return ret.Error(0)
}

func (_m *PhotoStorage) Remove(ctx context.Context, fileName string) error {
	ret := _m.Called(ctx, fileName)
	return ret.Error(0)
}

// NewPhotoStorage creates a new instance of PhotoStorage. It also registers a cleanup function to assert the mocks expectations.
func NewPhotoStorage(t testingT) *PhotoStorage {
	m := &PhotoStorage{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// QRGenerator is a mock type for the QRGenerator type
type QRGenerator struct {
	mock.Mock
}

func (_m *QRGenerator) Generate(code string) ([]byte, error) {
	ret := _m.Called(code)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

// NewQRGenerator creates a new instance of QRGenerator. It also registers a cleanup function to assert the mocks expectations.
func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
