package matcher

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
	api.POST("/predict", h.Predict)
}

type predictRequest struct {
	Symptoms []string `json:"symptoms"`
}

type predictResponse struct {
	Diseases       []MatchResult `json:"diseases"`
	TotalSymptoms  int           `json:"total_symptoms"`
	ProcessingTime float64       `json:"processing_time"`
}

// Predict handles POST /api/predict.
func (h *Handler) Predict(c echo.Context) error {
	var req predictRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.Symptoms) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "At least one symptom is required for prediction")
	}

	symptoms := make([]string, 0, len(req.Symptoms))
	for _, s := range req.Symptoms {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			symptoms = append(symptoms, s)
		}
	}
	if len(symptoms) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Valid symptoms are required for prediction")
	}

	pred := h.svc.Predict(symptoms)
	return c.JSON(http.StatusOK, predictResponse{
		Diseases:       pred.Diseases,
		TotalSymptoms:  len(symptoms),
		ProcessingTime: pred.ProcessingTime,
	})
}
