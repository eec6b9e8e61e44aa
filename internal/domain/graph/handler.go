package graph

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes knowledge graph endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a graph handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers graph routes on the given group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/graph", h.BuildGraph)
}

type buildGraphRequest struct {
	Symptoms []string `json:"symptoms"`
	Diseases []string `json:"diseases"`
}

// BuildGraph handles POST /api/graph.
func (h *Handler) BuildGraph(c echo.Context) error {
	var req buildGraphRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.Symptoms) == 0 && len(req.Diseases) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "At least one symptom or disease is required")
	}
	g := h.svc.BuildGraph(c.Request().Context(), req.Symptoms, req.Diseases)
	return c.JSON(http.StatusOK, g)
}
