package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ZvonimirSimic/weather-service/internal/api/dto"
	"github.com/ZvonimirSimic/weather-service/internal/auth"
	"github.com/ZvonimirSimic/weather-service/internal/service"
	apperrors "github.com/ZvonimirSimic/weather-service/pkg/util"
)

// StatsHandler exposes per-user search statistics.
type StatsHandler struct {
	searches *service.SearchService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(searchService *service.SearchService) *StatsHandler {
	return &StatsHandler{searches: searchService}
}

// TopCities handles GET /api/stats/top-cities.
func (h *StatsHandler) TopCities(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	counts, err := h.searches.TopCities(c.Context(), principal.UserID)
	if err != nil {
		return err
	}

	items := make([]dto.CityCountResponse, 0, len(counts))
	for _, count := range counts {
		items = append(items, dto.CityCountResponse{City: count.City, Count: count.Count})
	}
	return c.JSON(items)
}

// Recent handles GET /api/stats/recent.
func (h *StatsHandler) Recent(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	searches, err := h.searches.Recent(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewRecentSearchResponses(searches))
}

// Conditions handles GET /api/stats/conditions.
func (h *StatsHandler) Conditions(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	counts, err := h.searches.Conditions(c.Context(), principal.UserID)
	if err != nil {
		return err
	}

	items := make([]dto.ConditionCountResponse, 0, len(counts))
	for _, count := range counts {
		items = append(items, dto.ConditionCountResponse{Condition: count.Condition, Count: count.Count})
	}
	return c.JSON(items)
}
