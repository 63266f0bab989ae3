package domain

import "time"

// ForecastEntry is one three-hour slot of the upstream 5-day forecast.
type ForecastEntry struct {
	Date        time.Time
	Temp        float64
	Description string
	Icon        string
}

// CurrentConditions describes the weather at a coordinate, used by the
// location widget.
type CurrentConditions struct {
	City        string
	Temp        float64
	Description string
	Icon        string
}
