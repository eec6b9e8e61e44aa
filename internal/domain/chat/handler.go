package chat

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Handler exposes the conversational endpoint.
type Handler struct {
	svc *Service
}

// NewHandler creates a chat handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers chat routes on the given group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/chat", h.Chat)
}

type chatRequest struct {
	Message string    `json:"message"`
	History []Message `json:"history"`
}

// Chat handles POST /api/chat.
func (h *Handler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Message) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Message cannot be empty")
	}
	reply := h.svc.Respond(c.Request().Context(), req.Message, req.History)
	return c.JSON(http.StatusOK, reply)
}
