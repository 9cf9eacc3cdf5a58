package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Kitchen struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type State struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type City struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	State State  `json:"state"`
}

type Address struct {
	ZipCode    string `json:"zip_code"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district"`
	City       City   `json:"city"`
}

type Restaurant struct {
	ID          int64           `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	IsActive    bool            `json:"is_active"`
	IsOpen      bool            `json:"is_open"`
	Kitchen     Kitchen         `json:"kitchen"`
	Address     Address         `json:"address"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type Product struct {
	ID           int64           `json:"id"`
	RestaurantID int64           `json:"-"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Active       bool            `json:"active"`
}

type ProductPhoto struct {
	ProductID   int64  `json:"product_id"`
	FileName    string `json:"file_name"`
	Description string `json:"description"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// LifecycleEvent is published after a restaurant mutation commits.
type LifecycleEvent struct {
	Type      string    `json:"type"`
	Code      string    `json:"code"`
	IsActive  bool      `json:"is_active"`
	IsOpen    bool      `json:"is_open"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventRestaurantCreated        = "restaurant.created"
	EventRestaurantUpdated        = "restaurant.updated"
	EventRestaurantActivated      = "restaurant.activated"
	EventRestaurantInactivated    = "restaurant.inactivated"
	EventRestaurantOpened         = "restaurant.opened"
	EventRestaurantClosed         = "restaurant.closed"
	EventRestaurantAddressUpdated = "restaurant.address_updated"
	EventRestaurantDeleted        = "restaurant.deleted"
)

func NewLifecycleEvent(eventType string, r *Restaurant) LifecycleEvent {
	return LifecycleEvent{
		Type:      eventType,
		Code:      r.Code,
		IsActive:  r.IsActive,
		IsOpen:    r.IsOpen,
		Timestamp: time.Now().UTC(),
	}
}
