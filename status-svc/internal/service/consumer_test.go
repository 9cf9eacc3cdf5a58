package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"food-catalog/logger"
	"food-catalog/status-svc/internal/domain"
	"food-catalog/status-svc/internal/mocks"
	"food-catalog/status-svc/internal/service"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// scriptedReader replays its messages and errors, then cancels the consumer
// context and blocks until it is done.
type scriptedReader struct {
	steps  []func() (kafka.Message, error)
	cancel context.CancelFunc
}

func (r *scriptedReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.steps) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	step := r.steps[0]
	r.steps = r.steps[1:]
	return step()
}

func message(t *testing.T, event domain.LifecycleEvent) func() (kafka.Message, error) {
	t.Helper()
	payload, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	return func() (kafka.Message, error) { return kafka.Message{Key: []byte(event.Code), Value: payload}, nil }
}

func TestConsumer_ProcessEvent(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		event          domain.LifecycleEvent
		setupMockStore func(*mocks.StatusStore)
		wantErr        bool
	}{
		{
			name:  "opened",
			event: domain.LifecycleEvent{Type: "restaurant.opened", Code: "a", IsActive: true, IsOpen: true, Timestamp: ts},
			setupMockStore: func(mockStore *mocks.StatusStore) {
				mockStore.On("SaveStatus", mock.Anything, mock.MatchedBy(func(e domain.LifecycleEvent) bool {
					return e.Code == "a" && e.IsOpen
				})).Return(nil)
			},
		},
		{
			name:  "deleted",
			event: domain.LifecycleEvent{Type: domain.EventRestaurantDeleted, Code: "a", Timestamp: ts},
			setupMockStore: func(mockStore *mocks.StatusStore) {
				mockStore.On("RemoveStatus", mock.Anything, "a").Return(nil)
			},
		},
		{
			name:  "store error",
			event: domain.LifecycleEvent{Type: "restaurant.closed", Code: "a", IsActive: true, Timestamp: ts},
			setupMockStore: func(mockStore *mocks.StatusStore) {
				mockStore.On("SaveStatus", mock.Anything, mock.Anything).Return(errors.New("redis error"))
			},
			wantErr: true,
		},
		{
			name:           "foreign event type",
			event:          domain.LifecycleEvent{Type: "order.created", Code: "a"},
			setupMockStore: func(*mocks.StatusStore) {},
		},
		{
			name:           "missing code",
			event:          domain.LifecycleEvent{Type: "restaurant.opened"},
			setupMockStore: func(*mocks.StatusStore) {},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockStore := mocks.NewStatusStore(t)
			testCase.setupMockStore(mockStore)

			consumer := &service.Consumer{Store: mockStore, Log: logger.NewNop()}
			err := consumer.ProcessEvent(context.Background(), testCase.event)

			if testCase.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConsumer_StartSkipsBadMessagesAndStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mockStore := mocks.NewStatusStore(t)
	mockStore.On("SaveStatus", mock.Anything, mock.MatchedBy(func(e domain.LifecycleEvent) bool {
		return e.Code == "a"
	})).Return(nil).Once()
	mockStore.On("SaveStatus", mock.Anything, mock.MatchedBy(func(e domain.LifecycleEvent) bool {
		return e.Code == "b"
	})).Return(errors.New("redis error")).Once()

	reader := &scriptedReader{
		cancel: cancel,
		steps: []func() (kafka.Message, error){
			func() (kafka.Message, error) { return kafka.Message{}, errors.New("broker unavailable") },
			func() (kafka.Message, error) { return kafka.Message{Value: []byte("{not json")}, nil },
			message(t, domain.LifecycleEvent{Type: "restaurant.activated", Code: "a", IsActive: true}),
			message(t, domain.LifecycleEvent{Type: "restaurant.activated", Code: "b", IsActive: true}),
		},
	}

	done := make(chan struct{})
	go func() {
		service.NewConsumer(reader, mockStore, logger.NewNop()).Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop after cancellation")
	}
}

type failingReader struct {
	err   error
	reads atomic.Int32
}

func (r *failingReader) ReadMessage(context.Context) (kafka.Message, error) {
	r.reads.Add(1)
	return kafka.Message{}, r.err
}

func TestConsumer_StartBacksOffOnRepeatedReadErrors(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	reader := &failingReader{err: errors.New("broker unavailable")}
	consumer := service.NewConsumer(reader, mocks.NewStatusStore(t), logger.NewNop())
	consumer.ReadBackoff = 50 * time.Millisecond

	consumer.Start(ctx)

	// 50ms, 100ms, 200ms waits fit at most four reads into the window.
	assert.LessOrEqual(t, reader.reads.Load(), int32(4))
	assert.GreaterOrEqual(t, reader.reads.Load(), int32(2))
}

func TestConsumer_StartReturnsWhenReaderIsClosed(t *testing.T) {
	reader := &failingReader{err: io.EOF}
	consumer := service.NewConsumer(reader, mocks.NewStatusStore(t), logger.NewNop())

	done := make(chan struct{})
	go func() {
		consumer.Start(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer kept reading from a closed reader")
	}
	assert.Equal(t, int32(1), reader.reads.Load())
}
