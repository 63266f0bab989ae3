package service

import (
	"context"

	"github.com/ZvonimirSimic/weather-service/internal/domain"
	"github.com/ZvonimirSimic/weather-service/internal/repository"
)

const (
	historyLimit   = 100
	topCitiesLimit = 3
	recentLimit    = 3
)

// SearchService exposes per-user history and statistics reads. Every query
// is scoped on the id extracted from the verified token.
type SearchService struct {
	searches repository.SearchRepository
}

// NewSearchService builds the service.
func NewSearchService(searches repository.SearchRepository) *SearchService {
	return &SearchService{searches: searches}
}

// History returns the caller's searches, newest first, capped at 100 rows.
func (s *SearchService) History(ctx context.Context, userID int64) ([]domain.Search, error) {
	return s.searches.ListByUser(ctx, userID, historyLimit)
}

// TopCities returns the caller's three most searched cities.
func (s *SearchService) TopCities(ctx context.Context, userID int64) ([]domain.CityCount, error) {
	return s.searches.TopCities(ctx, userID, topCitiesLimit)
}

// Recent returns the caller's three latest searches.
func (s *SearchService) Recent(ctx context.Context, userID int64) ([]domain.Search, error) {
	return s.searches.Recent(ctx, userID, recentLimit)
}

// Conditions returns the distribution of weather conditions across the
// caller's searches, most frequent first.
func (s *SearchService) Conditions(ctx context.Context, userID int64) ([]domain.ConditionCount, error) {
	return s.searches.ConditionCounts(ctx, userID)
}
