package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ZvonimirSimic/weather-service/internal/cache"
	"github.com/ZvonimirSimic/weather-service/internal/domain"
	"github.com/ZvonimirSimic/weather-service/internal/events"
	"github.com/ZvonimirSimic/weather-service/internal/observability"
	"github.com/ZvonimirSimic/weather-service/internal/repository"
	"github.com/ZvonimirSimic/weather-service/internal/weather"
	apperrors "github.com/ZvonimirSimic/weather-service/pkg/util"
)

// ForecastProvider abstracts the upstream weather API.
type ForecastProvider interface {
	Forecast(ctx context.Context, city string) ([]domain.ForecastEntry, error)
	Current(ctx context.Context, lat, lon float64) (*domain.CurrentConditions, error)
}

// WeatherService serves forecast lookups and records search history.
type WeatherService struct {
	provider   ForecastProvider
	cache      *cache.ForecastCache
	searches   repository.SearchRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewWeatherService builds the service.
func NewWeatherService(
	provider ForecastProvider,
	forecastCache *cache.ForecastCache,
	searches repository.SearchRepository,
	dispatcher events.Dispatcher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *WeatherService {
	return &WeatherService{
		provider:   provider,
		cache:      forecastCache,
		searches:   searches,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
	}
}

// Forecast returns the upcoming forecast for a city and records the search,
// attributed to userID when the caller was authenticated. Cache hits still
// record a row: history tracks lookups, not upstream calls.
func (s *WeatherService) Forecast(ctx context.Context, city string, userID *int64) ([]domain.ForecastEntry, error) {
	normalized := strings.ToLower(strings.TrimSpace(city))
	if normalized == "" {
		return nil, apperrors.NewValidationError("city required", nil)
	}

	entries, cacheHit := s.cache.Get(ctx, normalized)
	if cacheHit {
		s.metrics.RecordCacheHit()
	} else {
		s.metrics.RecordCacheMiss()

		var err error
		entries, err = s.provider.Forecast(ctx, normalized)
		if err != nil {
			if errors.Is(err, weather.ErrNotFound) {
				s.metrics.RecordUpstream("forecast", "not_found")
				return nil, apperrors.NewNotFound("city")
			}
			s.metrics.RecordUpstream("forecast", "error")
			return nil, apperrors.NewInternalError(err)
		}
		s.metrics.RecordUpstream("forecast", "ok")
		s.logger.Debug("forecast fetched from upstream",
			zap.String("city", normalized), zap.Int("entries", len(entries)))
		s.cache.Set(ctx, normalized, entries)
	}

	if err := s.recordSearch(ctx, normalized, userID, entries, cacheHit); err != nil {
		return nil, err
	}
	return entries, nil
}

// CurrentByLocation returns present conditions at a coordinate. Location
// lookups are not recorded as searches, matching the original widget.
func (s *WeatherService) CurrentByLocation(ctx context.Context, lat, lon float64) (*domain.CurrentConditions, error) {
	conditions, err := s.provider.Current(ctx, lat, lon)
	if err != nil {
		if errors.Is(err, weather.ErrNotFound) {
			s.metrics.RecordUpstream("current", "not_found")
			return nil, apperrors.NewNotFound("location")
		}
		s.metrics.RecordUpstream("current", "error")
		return nil, apperrors.NewInternalError(err)
	}
	s.metrics.RecordUpstream("current", "ok")
	return conditions, nil
}

func (s *WeatherService) recordSearch(ctx context.Context, city string, userID *int64, entries []domain.ForecastEntry, cacheHit bool) error {
	search := &domain.Search{
		UserID:    userID,
		City:      city,
		QueryTime: time.Now().UTC(),
	}
	if len(entries) > 0 {
		first := entries[0]
		temp := first.Temp
		search.Temp = &temp
		search.Description = first.Description
		search.Icon = first.Icon
	}

	if err := s.searches.Create(ctx, search); err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventSearchRecorded,
			Timestamp: search.QueryTime,
			Payload:   events.SearchRecordedPayload{UserID: userID, City: city, CacheHit: cacheHit},
		})
	}
	return nil
}
