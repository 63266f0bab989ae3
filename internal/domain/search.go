package domain

import "time"

// Search records one forecast lookup. UserID is nil for anonymous lookups;
// City is stored trimmed and lower-cased. Temp, Description and Icon
// summarize the first forecast entry at lookup time (Temp is nil when the
// upstream returned no entries).
type Search struct {
	ID          int64
	UserID      *int64
	City        string
	QueryTime   time.Time
	Temp        *float64
	Description string
	Icon        string
	CreatedAt   time.Time
}

// CityCount is one row of the top-cities statistic.
type CityCount struct {
	City  string
	Count int64
}

// ConditionCount is one row of the weather-condition distribution.
type ConditionCount struct {
	Condition string
	Count     int64
}
