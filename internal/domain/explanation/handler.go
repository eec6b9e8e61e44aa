package explanation

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Handler exposes the term explanation endpoint.
type Handler struct {
	svc *Service
}

// NewHandler creates an explanation handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers explanation routes on the given group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/explain/:term", h.Explain)
}

// Explain handles GET /api/explain/:term.
func (h *Handler) Explain(c echo.Context) error {
	term := c.Param("term")
	if strings.TrimSpace(term) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Term cannot be empty")
	}
	return c.JSON(http.StatusOK, h.svc.Explain(c.Request().Context(), term))
}
