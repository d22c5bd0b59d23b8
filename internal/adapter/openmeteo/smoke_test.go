//go:build openmeteo

package openmeteo

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hits the real Open-Meteo API. Run with: go test -tags openmeteo ./internal/adapter/openmeteo
func TestClientFetchLive(t *testing.T) {
	c := NewClient(10*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))

	forecast, err := c.Fetch(context.Background(), 53.916943, -122.749443)
	require.NoError(t, err)

	assert.NotEmpty(t, forecast.Timezone)
	assert.NotEmpty(t, forecast.Hourly.Time)
	assert.Equal(t, len(forecast.Hourly.Time), len(forecast.Hourly.Temperature))
}
