package extraction

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/extract_symptoms", h.Extract)
}

type extractRequest struct {
	Text string `json:"text"`
}

// Extract handles POST /api/extract_symptoms.
func (h *Handler) Extract(c echo.Context) error {
	var req extractRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Text input cannot be empty")
	}

	return c.JSON(http.StatusOK, h.svc.Extract(c.Request().Context(), req.Text))
}
