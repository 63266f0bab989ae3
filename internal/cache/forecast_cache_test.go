package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ZvonimirSimic/weather-service/internal/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) (*ForecastCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewForecastCache(client, ttl, zap.NewNop()), mr
}

func TestCacheRoundtrip(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	entries := []domain.ForecastEntry{
		{Date: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC), Temp: 15.5, Description: "clear sky", Icon: "01d"},
	}

	_, ok := c.Get(ctx, "zagreb")
	assert.False(t, ok)

	c.Set(ctx, "zagreb", entries)

	got, ok := c.Get(ctx, "zagreb")
	require.True(t, ok)
	assert.Equal(t, entries, got)

	// Keys are per city.
	_, ok = c.Get(ctx, "split")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "zagreb", []domain.ForecastEntry{{Temp: 1}})
	mr.FastForward(2 * time.Minute)

	_, ok := c.Get(ctx, "zagreb")
	assert.False(t, ok)
}

func TestCacheCorruptEntryIsMiss(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)

	require.NoError(t, mr.Set("forecast:zagreb", "not json"))

	_, ok := c.Get(context.Background(), "zagreb")
	assert.False(t, ok)
}

func TestCacheNilSafe(t *testing.T) {
	var c *ForecastCache

	_, ok := c.Get(context.Background(), "zagreb")
	assert.False(t, ok)
	c.Set(context.Background(), "zagreb", nil)
}
