package mocks

import (
	context "context"

	domain "food-catalog/status-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// StatusStore is a mock type for the StatusStore type
type StatusStore struct {
	mock.Mock
}

func (_m *StatusStore) SaveStatus(ctx context.Context, event domain.LifecycleEvent) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

func (_m *StatusStore) RemoveStatus(ctx context.Context, code string) error {
	ret := _m.Called(ctx, code)
	return ret.Error(0)
}

// NewStatusStore creates a new instance of StatusStore. It also registers a cleanup function to assert the mocks expectations.
func NewStatusStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *StatusStore {
	m := &StatusStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
