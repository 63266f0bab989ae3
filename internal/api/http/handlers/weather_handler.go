package handlers

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ZvonimirSimic/weather-service/internal/api/dto"
	"github.com/ZvonimirSimic/weather-service/internal/auth"
	"github.com/ZvonimirSimic/weather-service/internal/service"
	apperrors "github.com/ZvonimirSimic/weather-service/pkg/util"
)

// WeatherHandler proxies forecast and current-conditions lookups.
type WeatherHandler struct {
	weather *service.WeatherService
}

// NewWeatherHandler constructs handler.
func NewWeatherHandler(weatherService *service.WeatherService) *WeatherHandler {
	return &WeatherHandler{weather: weatherService}
}

// Forecast handles GET /api/forecast/:city. Works anonymously; when a valid
// token is attached the recorded search is attributed to the caller.
func (h *WeatherHandler) Forecast(c *fiber.Ctx) error {
	city, err := url.PathUnescape(c.Params("city"))
	if err != nil || city == "" {
		return apperrors.NewValidationError("city required", nil)
	}

	var userID *int64
	if principal, ok := auth.PrincipalFromContext(c); ok {
		userID = &principal.UserID
	}

	entries, err := h.weather.Forecast(c.Context(), city, userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewForecastResponse(entries))
}

// Location handles GET /api/weather/location?lat=..&lon=..
func (h *WeatherHandler) Location(c *fiber.Ctx) error {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		return apperrors.NewValidationError("lat and lon are required numeric parameters", nil)
	}

	conditions, err := h.weather.CurrentByLocation(c.Context(), lat, lon)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCurrentConditionsResponse(conditions))
}
