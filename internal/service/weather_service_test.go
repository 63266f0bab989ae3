package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ZvonimirSimic/weather-service/internal/cache"
	"github.com/ZvonimirSimic/weather-service/internal/domain"
	"github.com/ZvonimirSimic/weather-service/internal/observability"
	"github.com/ZvonimirSimic/weather-service/internal/weather"
	apperrors "github.com/ZvonimirSimic/weather-service/pkg/util"
)

func sampleEntries() []domain.ForecastEntry {
	base := time.Now().UTC().Truncate(time.Hour).Add(3 * time.Hour)
	return []domain.ForecastEntry{
		{Date: base, Temp: 12.5, Description: "light rain", Icon: "10d"},
		{Date: base.Add(3 * time.Hour), Temp: 14.0, Description: "clear sky", Icon: "01d"},
	}
}

func newWeatherService(provider ForecastProvider, searches *memSearchRepo, forecastCache *cache.ForecastCache) *WeatherService {
	return NewWeatherService(provider, forecastCache, searches, nil, observability.NewMetrics(), zap.NewNop())
}

func TestForecastRecordsAttributedSearch(t *testing.T) {
	provider := &fakeProvider{entries: sampleEntries()}
	searches := newMemSearchRepo()
	svc := newWeatherService(provider, searches, nil)

	userID := int64(42)
	entries, err := svc.Forecast(context.Background(), "  Zagreb ", &userID)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	// City is normalized before hitting the provider and the history.
	assert.Equal(t, "zagreb", provider.lastCity)

	require.Len(t, searches.searches, 1)
	recorded := searches.searches[0]
	assert.Equal(t, "zagreb", recorded.City)
	require.NotNil(t, recorded.UserID)
	assert.Equal(t, int64(42), *recorded.UserID)
	require.NotNil(t, recorded.Temp)
	assert.Equal(t, 12.5, *recorded.Temp)
	assert.Equal(t, "light rain", recorded.Description)
	assert.Equal(t, "10d", recorded.Icon)
}

func TestForecastRecordsAnonymousSearch(t *testing.T) {
	searches := newMemSearchRepo()
	svc := newWeatherService(&fakeProvider{entries: sampleEntries()}, searches, nil)

	_, err := svc.Forecast(context.Background(), "zagreb", nil)
	require.NoError(t, err)

	require.Len(t, searches.searches, 1)
	assert.Nil(t, searches.searches[0].UserID)
}

func TestForecastEmptyUpstream(t *testing.T) {
	searches := newMemSearchRepo()
	svc := newWeatherService(&fakeProvider{}, searches, nil)

	entries, err := svc.Forecast(context.Background(), "zagreb", nil)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.Len(t, searches.searches, 1)
	assert.Nil(t, searches.searches[0].Temp)
	assert.Empty(t, searches.searches[0].Description)
}

func TestForecastCityRequired(t *testing.T) {
	svc := newWeatherService(&fakeProvider{}, newMemSearchRepo(), nil)

	_, err := svc.Forecast(context.Background(), "   ", nil)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestForecastUnknownCity(t *testing.T) {
	svc := newWeatherService(&fakeProvider{err: weather.ErrNotFound}, newMemSearchRepo(), nil)

	_, err := svc.Forecast(context.Background(), "atlantis", nil)
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, 404, domainErr.HTTPStatus)
}

func TestForecastUpstreamFailure(t *testing.T) {
	svc := newWeatherService(&fakeProvider{err: errors.New("connection refused")}, newMemSearchRepo(), nil)

	_, err := svc.Forecast(context.Background(), "zagreb", nil)
	require.Error(t, err)
	assert.Equal(t, 500, apperrors.ToDomainError(err).HTTPStatus)
}

func TestForecastCacheHitStillRecordsSearch(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	forecastCache := cache.NewForecastCache(client, time.Minute, zap.NewNop())
	provider := &fakeProvider{entries: sampleEntries()}
	searches := newMemSearchRepo()
	svc := newWeatherService(provider, searches, forecastCache)

	_, err := svc.Forecast(context.Background(), "zagreb", nil)
	require.NoError(t, err)
	_, err = svc.Forecast(context.Background(), "zagreb", nil)
	require.NoError(t, err)

	// Second lookup is served from cache but history still grows.
	assert.Equal(t, 1, provider.forecastCalls)
	assert.Len(t, searches.searches, 2)
}

func TestCurrentByLocation(t *testing.T) {
	svc := newWeatherService(&fakeProvider{
		current: &domain.CurrentConditions{City: "Zagreb", Temp: 18.2, Description: "clear sky", Icon: "01d"},
	}, newMemSearchRepo(), nil)

	conditions, err := svc.CurrentByLocation(context.Background(), 45.81, 15.98)
	require.NoError(t, err)
	assert.Equal(t, "Zagreb", conditions.City)
	assert.Equal(t, 18.2, conditions.Temp)
}

func TestCurrentByLocationNotFound(t *testing.T) {
	svc := newWeatherService(&fakeProvider{err: weather.ErrNotFound}, newMemSearchRepo(), nil)

	_, err := svc.CurrentByLocation(context.Background(), 0, 0)
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}
