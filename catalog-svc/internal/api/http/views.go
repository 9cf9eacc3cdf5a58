package httpapi

import (
	"time"

	"food-catalog/catalog-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// restaurantSummary is the list representation of a restaurant.
type restaurantSummary struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	KitchenName string          `json:"kitchen_name"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	IsActive    bool            `json:"is_active"`
	IsOpen      bool            `json:"is_open"`
}

// restaurantModel is the full representation. The numeric id stays internal.
type restaurantModel struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	IsActive    bool            `json:"is_active"`
	IsOpen      bool            `json:"is_open"`
	Kitchen     domain.Kitchen  `json:"kitchen"`
	Address     domain.Address  `json:"address"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toRestaurantSummary(r domain.Restaurant) restaurantSummary {
	return restaurantSummary{
		Code:        r.Code,
		Name:        r.Name,
		KitchenName: r.Kitchen.Name,
		ShippingFee: r.ShippingFee,
		IsActive:    r.IsActive,
		IsOpen:      r.IsOpen,
	}
}

func toRestaurantModel(r domain.Restaurant) restaurantModel {
	return restaurantModel{
		Code:        r.Code,
		Name:        r.Name,
		ShippingFee: r.ShippingFee,
		IsActive:    r.IsActive,
		IsOpen:      r.IsOpen,
		Kitchen:     r.Kitchen,
		Address:     r.Address,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toRestaurantSummaries(restaurants []domain.Restaurant) []restaurantSummary {
	out := make([]restaurantSummary, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, toRestaurantSummary(r))
	}
	return out
}
