package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ZvonimirSimic/weather-service/internal/domain"
)

const forecastKeyPrefix = "forecast:"

// ForecastCache stores parsed forecast slices in Redis, keyed by normalized
// city name. Cache failures are logged and treated as misses so a broken
// Redis never breaks lookups.
type ForecastCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewForecastCache builds a cache with the given entry lifetime.
func NewForecastCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ForecastCache {
	return &ForecastCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached forecast for a city, if present.
func (c *ForecastCache) Get(ctx context.Context, city string) ([]domain.ForecastEntry, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, forecastKeyPrefix+city).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("forecast cache read failed", zap.String("city", city), zap.Error(err))
		}
		return nil, false
	}

	var entries []domain.ForecastEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		c.logger.Warn("forecast cache entry corrupt", zap.String("city", city), zap.Error(err))
		return nil, false
	}
	return entries, true
}

// Set stores the forecast for a city with the configured TTL.
func (c *ForecastCache) Set(ctx context.Context, city string, entries []domain.ForecastEntry) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		c.logger.Warn("forecast cache encode failed", zap.String("city", city), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, forecastKeyPrefix+city, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("forecast cache write failed", zap.String("city", city), zap.Error(err))
	}
}
