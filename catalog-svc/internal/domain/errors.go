package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("entity not found")
	ErrReferenceNotFound = errors.New("referenced entity not found")
	ErrInvalidState      = errors.New("invalid lifecycle state")
	ErrEntityInUse       = errors.New("entity is in use")
)

// BusinessRuleViolation is what callers see when a write is well formed but
// breaks a domain rule or names something that does not exist. It does not
// unwrap, so the internal cause is not reachable through errors.Is.
type BusinessRuleViolation struct {
	Message string
}

func (e *BusinessRuleViolation) Error() string {
	return e.Message
}

func NewBusinessRuleViolation(format string, args ...any) *BusinessRuleViolation {
	return &BusinessRuleViolation{Message: fmt.Sprintf(format, args...)}
}

func RestaurantNotFound(code string) error {
	return fmt.Errorf("%w: no restaurant with code %s", ErrNotFound, code)
}

func KitchenNotFound(id int64) error {
	return fmt.Errorf("%w: no kitchen with id %d", ErrReferenceNotFound, id)
}

func CityNotFound(id int64) error {
	return fmt.Errorf("%w: no city with id %d", ErrReferenceNotFound, id)
}

func ProductNotFound(restaurantCode string, productID int64) error {
	return fmt.Errorf("%w: no product %d in restaurant %s", ErrNotFound, productID, restaurantCode)
}

func IsBusinessRuleViolation(err error) bool {
	var target *BusinessRuleViolation
	return errors.As(err, &target)
}

// NotFound is the store-level miss for any entity kind.
func NotFound(kind string, key any) error {
	return fmt.Errorf("%w: no %s %v", ErrNotFound, kind, key)
}

func KitchenInUse(id int64, restaurants int) error {
	return fmt.Errorf("%w: kitchen %d is referenced by %d restaurant(s)", ErrEntityInUse, id, restaurants)
}
