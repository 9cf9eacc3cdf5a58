package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"food-catalog/logger"
	"food-catalog/status-svc/internal/domain"
)

const maxReadBackoff = 30 * time.Second

type Consumer struct {
	Reader MessageReader
	Store  StatusStore
	Log    *logger.Logger
	// ReadBackoff is the first wait after a failed read. It doubles on every
	// further failure up to maxReadBackoff and resets after a good read.
	ReadBackoff time.Duration
}

func NewConsumer(reader MessageReader, store StatusStore, log *logger.Logger) *Consumer {
	return &Consumer{
		Reader:      reader,
		Store:       store,
		Log:         log,
		ReadBackoff: 500 * time.Millisecond,
	}
}

// Start reads until ctx is cancelled or the reader is closed. Undecodable
// messages and projection failures are logged and skipped.
func (c *Consumer) Start(ctx context.Context) {
	c.Log.Info("status consumer started")
	backoff := c.ReadBackoff
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.Log.Info("status consumer stopped")
				return
			}
			if errors.Is(err, io.EOF) {
				c.Log.Info("status consumer stopped, reader closed")
				return
			}
			c.Log.Warn("read message failed", "error", err, "retry_in", backoff)
			select {
			case <-ctx.Done():
				c.Log.Info("status consumer stopped")
				return
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, maxReadBackoff)
			continue
		}
		backoff = c.ReadBackoff

		var event domain.LifecycleEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.Log.Warn("undecodable lifecycle event", "offset", message.Offset, "error", err)
			continue
		}

		if err := c.ProcessEvent(ctx, event); err != nil {
			c.Log.Error("lifecycle event not projected", "type", event.Type, "code", event.Code, "error", err)
		}
	}
}

func (c *Consumer) ProcessEvent(ctx context.Context, event domain.LifecycleEvent) error {
	if !strings.HasPrefix(event.Type, domain.EventPrefix) || event.Code == "" {
		return nil
	}
	if event.Type == domain.EventRestaurantDeleted {
		return c.Store.RemoveStatus(ctx, event.Code)
	}
	if err := c.Store.SaveStatus(ctx, event); err != nil {
		return err
	}
	c.Log.Debug("restaurant status projected", "code", event.Code, "is_active", event.IsActive, "is_open", event.IsOpen)
	return nil
}
