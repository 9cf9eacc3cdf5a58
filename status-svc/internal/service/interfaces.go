package service

import (
	"context"

	"food-catalog/status-svc/internal/domain"
	"food-catalog/status-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StatusStore interface {
	SaveStatus(ctx context.Context, event domain.LifecycleEvent) error
	RemoveStatus(ctx context.Context, code string) error
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessEvent(ctx context.Context, event domain.LifecycleEvent) error
}

var (
	_ StatusStore       = (*storage.Store)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
