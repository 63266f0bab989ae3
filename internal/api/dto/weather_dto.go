package dto

import (
	"time"

	"github.com/ZvonimirSimic/weather-service/internal/domain"
)

// Forecast timestamps are rendered the way the upstream provider formats
// them, which is what the client's filters expect.
const forecastDateLayout = "2006-01-02 15:04:05"

// ForecastEntryResponse is one forecast slot.
type ForecastEntryResponse struct {
	Date        string  `json:"date"`
	Temp        float64 `json:"temp"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// NewForecastResponse converts domain entries.
func NewForecastResponse(entries []domain.ForecastEntry) []ForecastEntryResponse {
	out := make([]ForecastEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ForecastEntryResponse{
			Date:        e.Date.UTC().Format(forecastDateLayout),
			Temp:        e.Temp,
			Description: e.Description,
			Icon:        e.Icon,
		})
	}
	return out
}

// CurrentConditionsResponse is the location widget payload.
type CurrentConditionsResponse struct {
	City        string  `json:"city"`
	Temp        float64 `json:"temp"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// NewCurrentConditionsResponse converts the domain value.
func NewCurrentConditionsResponse(c *domain.CurrentConditions) CurrentConditionsResponse {
	return CurrentConditionsResponse{
		City:        c.City,
		Temp:        c.Temp,
		Description: c.Description,
		Icon:        c.Icon,
	}
}

// SearchResponse is one history row.
type SearchResponse struct {
	ID          int64     `json:"id"`
	UserID      *int64    `json:"user_id,omitempty"`
	City        string    `json:"city"`
	QueryTime   time.Time `json:"query_time"`
	Temp        *float64  `json:"temp"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}

// NewSearchResponses converts domain rows.
func NewSearchResponses(searches []domain.Search) []SearchResponse {
	out := make([]SearchResponse, 0, len(searches))
	for _, s := range searches {
		out = append(out, SearchResponse{
			ID:          s.ID,
			UserID:      s.UserID,
			City:        s.City,
			QueryTime:   s.QueryTime,
			Temp:        s.Temp,
			Description: s.Description,
			Icon:        s.Icon,
		})
	}
	return out
}

// RecentSearchResponse is the trimmed stats view of a search.
type RecentSearchResponse struct {
	City        string    `json:"city"`
	Temp        *float64  `json:"temp"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	QueryTime   time.Time `json:"query_time"`
}

// NewRecentSearchResponses converts domain rows.
func NewRecentSearchResponses(searches []domain.Search) []RecentSearchResponse {
	out := make([]RecentSearchResponse, 0, len(searches))
	for _, s := range searches {
		out = append(out, RecentSearchResponse{
			City:        s.City,
			Temp:        s.Temp,
			Description: s.Description,
			Icon:        s.Icon,
			QueryTime:   s.QueryTime,
		})
	}
	return out
}

// CityCountResponse is one top-cities row.
type CityCountResponse struct {
	City  string `json:"city"`
	Count int64  `json:"count"`
}

// ConditionCountResponse is one condition-distribution row.
type ConditionCountResponse struct {
	Condition string `json:"condition"`
	Count     int64  `json:"count"`
}
