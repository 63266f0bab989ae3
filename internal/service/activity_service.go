package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ZvonimirSimic/weather-service/internal/events"
	"github.com/ZvonimirSimic/weather-service/internal/observability"
)

// ActivityService consumes domain events for activity logging and metrics.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *ActivityService {
	return &ActivityService{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserRegistered, a.handleUserRegistered)
	a.dispatcher.Subscribe(events.EventSearchRecorded, a.handleSearchRecorded)
}

func (a *ActivityService) handleUserRegistered(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserRegisteredPayload)
	if !ok {
		return nil
	}
	a.logger.Info("UserRegistered",
		zap.Int64("user_id", payload.UserID),
		zap.String("username", payload.Username))
	a.metrics.RecordRegistration()
	return nil
}

func (a *ActivityService) handleSearchRecorded(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.SearchRecordedPayload)
	if !ok {
		return nil
	}
	fields := []zap.Field{
		zap.String("city", payload.City),
		zap.Bool("cache_hit", payload.CacheHit),
	}
	if payload.UserID != nil {
		fields = append(fields, zap.Int64("user_id", *payload.UserID))
	}
	a.logger.Info("SearchRecorded", fields...)
	a.metrics.RecordSearch(payload.UserID == nil)
	return nil
}
