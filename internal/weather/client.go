package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ZvonimirSimic/weather-service/internal/config"
	"github.com/ZvonimirSimic/weather-service/internal/domain"
)

// ErrNotFound is returned when the upstream provider has no data for the
// requested city or coordinates.
var ErrNotFound = errors.New("weather data not found")

// dt_txt format used by the forecast endpoint; timestamps are UTC.
const forecastTimeLayout = "2006-01-02 15:04:05"

// Client calls the OpenWeatherMap REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	lang       string
	logger     *zap.Logger
	now        func() time.Time
}

// NewClient builds a provider client from configuration.
func NewClient(cfg config.WeatherConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		lang:       cfg.Lang,
		logger:     logger,
		now:        time.Now,
	}
}

type forecastResponse struct {
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
	} `json:"list"`
}

type currentResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

// Forecast fetches the 5-day / 3-hour forecast for a city and drops entries
// already in the past.
func (c *Client) Forecast(ctx context.Context, city string) ([]domain.ForecastEntry, error) {
	query := url.Values{}
	query.Set("q", city)
	query.Set("units", "metric")
	query.Set("appid", c.apiKey)
	query.Set("lang", c.lang)

	var payload forecastResponse
	if err := c.get(ctx, "/data/2.5/forecast", query, &payload); err != nil {
		return nil, err
	}

	now := c.now().UTC()
	entries := make([]domain.ForecastEntry, 0, len(payload.List))
	for _, item := range payload.List {
		ts, err := time.ParseInLocation(forecastTimeLayout, item.DtTxt, time.UTC)
		if err != nil {
			c.logger.Warn("skipping forecast entry with bad timestamp",
				zap.String("dt_txt", item.DtTxt), zap.Error(err))
			continue
		}
		if ts.Before(now) {
			continue
		}
		entry := domain.ForecastEntry{Date: ts, Temp: item.Main.Temp}
		if len(item.Weather) > 0 {
			entry.Description = item.Weather[0].Description
			entry.Icon = item.Weather[0].Icon
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Current fetches present conditions at a coordinate for the location widget.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*domain.CurrentConditions, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("units", "metric")
	query.Set("appid", c.apiKey)
	query.Set("lang", c.lang)

	var payload currentResponse
	if err := c.get(ctx, "/data/2.5/weather", query, &payload); err != nil {
		return nil, err
	}

	conditions := &domain.CurrentConditions{
		City: payload.Name,
		Temp: payload.Main.Temp,
	}
	if len(payload.Weather) > 0 {
		conditions.Description = payload.Weather[0].Description
		conditions.Icon = payload.Weather[0].Icon
	}
	return conditions, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("weather upstream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest {
			return ErrNotFound
		}
		return fmt.Errorf("weather upstream: unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
