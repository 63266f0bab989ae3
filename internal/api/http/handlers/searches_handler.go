package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ZvonimirSimic/weather-service/internal/api/dto"
	"github.com/ZvonimirSimic/weather-service/internal/auth"
	"github.com/ZvonimirSimic/weather-service/internal/service"
	apperrors "github.com/ZvonimirSimic/weather-service/pkg/util"
)

// SearchesHandler exposes the caller's search history.
type SearchesHandler struct {
	searches *service.SearchService
}

// NewSearchesHandler constructs handler.
func NewSearchesHandler(searchService *service.SearchService) *SearchesHandler {
	return &SearchesHandler{searches: searchService}
}

// Me handles GET /api/searches/me.
func (h *SearchesHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	searches, err := h.searches.History(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSearchResponses(searches))
}
