package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_ComponentCarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	lg := &Logger{SugaredLogger: zap.New(core).Sugar()}

	lg.Component("restaurants").Info("restaurant lifecycle transition committed", "type", "restaurant.opened")
	lg.With("kitchen_id", 3).Warn("cache invalidation failed")
	lg.Debug("plain")

	require.Equal(t, 3, logs.Len())
	first := logs.All()[0]
	assert.Equal(t, "restaurant lifecycle transition committed", first.Message)
	assert.Equal(t, "restaurants", first.ContextMap()["component"])
	assert.Equal(t, "restaurant.opened", first.ContextMap()["type"])
	assert.Equal(t, int64(3), logs.All()[1].ContextMap()["kitchen_id"])
	assert.NotContains(t, logs.All()[2].ContextMap(), "component")
}

func TestNew(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "PRODUCTION", ""} {
		lg, err := New(mode, "catalog-svc")
		require.NoError(t, err, mode)
		assert.NotNil(t, lg.SugaredLogger)
	}

	lg, err := New("prod", "")
	require.NoError(t, err)
	assert.NotNil(t, lg.SugaredLogger)
}
