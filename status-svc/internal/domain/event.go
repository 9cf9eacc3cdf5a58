package domain

import "time"

// LifecycleEvent is the message catalog-svc publishes after a restaurant
// mutation commits.
type LifecycleEvent struct {
	Type      string    `json:"type"`
	Code      string    `json:"code"`
	IsActive  bool      `json:"is_active"`
	IsOpen    bool      `json:"is_open"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventPrefix            = "restaurant."
	EventRestaurantDeleted = "restaurant.deleted"
)
