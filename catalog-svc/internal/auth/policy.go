package auth

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("access denied")
)

// Capability is what an operation demands of its caller.
type Capability string

const (
	None    Capability = ""
	Consult Capability = "consult"
	Manage  Capability = "manage"
)

// Operation identifies one public operation. Route names use the same values.
type Operation string

const (
	OpHealth                   Operation = "health"
	OpMetrics                  Operation = "metrics"
	OpKitchenFind              Operation = "kitchens.find"
	OpKitchenList              Operation = "kitchens.list"
	OpKitchenRestaurants       Operation = "kitchens.restaurants"
	OpKitchenCreate            Operation = "kitchens.create"
	OpKitchenUpdate            Operation = "kitchens.update"
	OpKitchenDelete            Operation = "kitchens.delete"
	OpRestaurantFind           Operation = "restaurants.find"
	OpRestaurantList           Operation = "restaurants.list"
	OpRestaurantFreeDelivery   Operation = "restaurants.free_delivery"
	OpRestaurantQRCode         Operation = "restaurants.qrcode"
	OpRestaurantCreate         Operation = "restaurants.create"
	OpRestaurantUpdate         Operation = "restaurants.update"
	OpRestaurantActivate       Operation = "restaurants.activate"
	OpRestaurantInactivate     Operation = "restaurants.inactivate"
	OpRestaurantActivateMany   Operation = "restaurants.activate_multiples"
	OpRestaurantInactivateMany Operation = "restaurants.inactivate_multiples"
	OpRestaurantOpen           Operation = "restaurants.open"
	OpRestaurantClose          Operation = "restaurants.close"
	OpRestaurantAddress        Operation = "restaurants.update_address"
	OpRestaurantDelete         Operation = "restaurants.delete"
	OpProductList              Operation = "products.list"
	OpProductFind              Operation = "products.find"
	OpProductCreate            Operation = "products.create"
	OpProductUpdate            Operation = "products.update"
	OpProductPhotoFind         Operation = "products.photo.find"
	OpProductPhotoSave         Operation = "products.photo.save"
)

// Policy maps every operation to the single capability it requires.
type Policy map[Operation]Capability

func DefaultPolicy() Policy {
	return Policy{
		OpHealth:        None,
		OpMetrics:       None,
		OpKitchenFind:   None,
		OpKitchenList:   None,
		OpKitchenCreate: None,
		OpKitchenUpdate: None,
		OpKitchenDelete: None,

		OpKitchenRestaurants:     Consult,
		OpRestaurantFind:         Consult,
		OpRestaurantList:         Consult,
		OpRestaurantFreeDelivery: Consult,
		OpRestaurantQRCode:       Consult,
		OpProductList:            Consult,
		OpProductFind:            Consult,
		OpProductPhotoFind:       Consult,

		OpRestaurantCreate:         Manage,
		OpRestaurantUpdate:         Manage,
		OpRestaurantActivate:       Manage,
		OpRestaurantInactivate:     Manage,
		OpRestaurantActivateMany:   Manage,
		OpRestaurantInactivateMany: Manage,
		OpRestaurantOpen:           Manage,
		OpRestaurantClose:          Manage,
		OpRestaurantAddress:        Manage,
		OpRestaurantDelete:         Manage,
		OpProductCreate:            Manage,
		OpProductUpdate:            Manage,
		OpProductPhotoSave:         Manage,
	}
}

// Gate checks callers against a Policy. Operations missing from the policy
// are denied.
type Gate struct {
	policy Policy
}

func NewGate(policy Policy) *Gate {
	return &Gate{policy: policy}
}

// Check returns ErrUnauthorized when a capability is needed and there is no
// principal, and ErrForbidden when the principal lacks it.
func (g *Gate) Check(principal *Principal, op Operation) error {
	required, known := g.policy[op]
	if !known {
		if principal == nil {
			return fmt.Errorf("%w: operation %q", ErrUnauthorized, op)
		}
		return fmt.Errorf("%w: operation %q is not in the policy", ErrForbidden, op)
	}
	if required == None {
		return nil
	}
	if principal == nil {
		return fmt.Errorf("%w: operation %q", ErrUnauthorized, op)
	}
	if !principal.Has(required) {
		return fmt.Errorf("%w: %q requires %s", ErrForbidden, op, required)
	}
	return nil
}

