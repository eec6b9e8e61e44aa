package history

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mednex/mednex/internal/platform/auth"
	"github.com/mednex/mednex/pkg/pagination"
)

// Handler exposes the customer diagnosis history endpoints. The route
// group it registers on must already authenticate requests.
type Handler struct {
	svc *Service
}

// NewHandler creates a history handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers customer routes on the given group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/save-diagnosis", h.SaveDiagnosis)
	g.GET("/diagnosis-history", h.History)
	g.GET("/diagnosis-history/:id", h.GetDiagnosis)
	g.DELETE("/diagnosis-history/:id", h.DeleteDiagnosis)
	g.GET("/statistics", h.Statistics)
}

type saveDiagnosisRequest struct {
	Symptoms          []string                 `json:"symptoms"`
	PredictedDiseases []map[string]interface{} `json:"predicted_diseases"`
}

// SaveDiagnosis handles POST /api/customer/save-diagnosis.
func (h *Handler) SaveDiagnosis(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req saveDiagnosisRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.svc.Save(c.Request().Context(), userID, req.Symptoms, req.PredictedDiseases)
	if err != nil {
		return historyHTTPError(err, "Failed to save diagnosis")
	}
	return c.JSON(http.StatusOK, rec)
}

// History handles GET /api/customer/diagnosis-history.
func (h *Handler) History(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	p := pagination.FromContext(c)
	records, err := h.svc.History(c.Request().Context(), userID, p.Skip, p.Limit)
	if err != nil {
		return historyHTTPError(err, "Failed to get diagnosis history")
	}
	if records == nil {
		records = []*Record{}
	}
	return c.JSON(http.StatusOK, records)
}

// GetDiagnosis handles GET /api/customer/diagnosis-history/:id.
func (h *Handler) GetDiagnosis(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, ErrRecordNotFound.Error())
	}
	rec, err := h.svc.Get(c.Request().Context(), userID, id)
	if err != nil {
		return historyHTTPError(err, "Failed to get diagnosis")
	}
	return c.JSON(http.StatusOK, rec)
}

// DeleteDiagnosis handles DELETE /api/customer/diagnosis-history/:id.
func (h *Handler) DeleteDiagnosis(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, ErrRecordNotFound.Error())
	}
	if err := h.svc.Delete(c.Request().Context(), userID, id); err != nil {
		return historyHTTPError(err, "Failed to delete diagnosis")
	}
	return c.NoContent(http.StatusNoContent)
}

// Statistics handles GET /api/customer/statistics.
func (h *Handler) Statistics(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	stats, err := h.svc.Statistics(c.Request().Context(), userID)
	if err != nil {
		return historyHTTPError(err, "Failed to get user statistics")
	}
	return c.JSON(http.StatusOK, stats)
}

func currentUserID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
	}
	return id, nil
}

func historyHTTPError(err error, fallback string) *echo.HTTPError {
	switch {
	case errors.Is(err, ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrAccessDenied):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, fallback)
	}
}
