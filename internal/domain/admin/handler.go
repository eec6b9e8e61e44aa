package admin

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mednex/mednex/internal/domain/identity"
	"github.com/mednex/mednex/internal/platform/auth"
	"github.com/mednex/mednex/pkg/pagination"
)

const listLimit = 100

// Handler exposes the admin-only management endpoints. The route group it
// registers on must already enforce the admin role.
type Handler struct {
	svc *Service
}

// NewHandler creates an admin handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers admin routes on the given group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/users", h.ListUsers)
	g.GET("/users/:id", h.GetUser)
	g.PUT("/users/:id", h.UpdateUser)
	g.DELETE("/users/:id", h.DeleteUser)

	g.POST("/diseases", h.CreateDisease)
	g.GET("/diseases", h.ListDiseases)
	g.GET("/diseases/:id", h.GetDisease)
	g.PUT("/diseases/:id", h.UpdateDisease)
	g.DELETE("/diseases/:id", h.DeleteDisease)

	g.POST("/symptoms", h.CreateSymptom)
	g.GET("/symptoms", h.ListSymptoms)
	g.GET("/symptoms/:id", h.GetSymptom)
	g.PUT("/symptoms/:id", h.UpdateSymptom)
	g.DELETE("/symptoms/:id", h.DeleteSymptom)

	g.GET("/analytics", h.Analytics)
	g.GET("/analytics/overview", h.Analytics)
}

// ListUsers handles GET /api/admin/users.
func (h *Handler) ListUsers(c echo.Context) error {
	p := pagination.WithDefault(c, listLimit)
	users, err := h.svc.ListUsers(c.Request().Context(), p.Skip, p.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list users")
	}
	if users == nil {
		users = []*identity.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser handles GET /api/admin/users/:id.
func (h *Handler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, identity.ErrUserNotFound.Error())
	}
	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return adminHTTPError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser handles PUT /api/admin/users/:id.
func (h *Handler) UpdateUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, identity.ErrUserNotFound.Error())
	}
	var update identity.UserUpdate
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	user, err := h.svc.UpdateUser(c.Request().Context(), id, update)
	if err != nil {
		return adminHTTPError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /api/admin/users/:id.
func (h *Handler) DeleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, identity.ErrUserNotFound.Error())
	}
	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		return adminHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type diseaseRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Symptoms    []string `json:"symptoms"`
	Treatment   string   `json:"treatment"`
	Severity    string   `json:"severity"`
	Category    *string  `json:"category"`
}

// CreateDisease handles POST /api/admin/diseases.
func (h *Handler) CreateDisease(c echo.Context) error {
	var req diseaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	disease := &Disease{
		Name:        req.Name,
		Description: req.Description,
		Symptoms:    req.Symptoms,
		Treatment:   req.Treatment,
		Severity:    req.Severity,
		Category:    req.Category,
		CreatedBy:   currentAdminID(c),
	}
	created, err := h.svc.CreateDisease(c.Request().Context(), disease)
	if err != nil {
		return adminHTTPError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// ListDiseases handles GET /api/admin/diseases.
func (h *Handler) ListDiseases(c echo.Context) error {
	p := pagination.WithDefault(c, listLimit)
	diseases, err := h.svc.ListDiseases(c.Request().Context(), p.Skip, p.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list diseases")
	}
	if diseases == nil {
		diseases = []*Disease{}
	}
	return c.JSON(http.StatusOK, diseases)
}

// GetDisease handles GET /api/admin/diseases/:id.
func (h *Handler) GetDisease(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, ErrDiseaseNotFound.Error())
	}
	disease, err := h.svc.GetDisease(c.Request().Context(), id)
	if err != nil {
		return adminHTTPError(err)
	}
	return c.JSON(http.StatusOK, disease)
}

// UpdateDisease handles PUT /api/admin/diseases/:id.
func (h *Handler) UpdateDisease(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, ErrDiseaseNotFound.Error())
	}
	var update DiseaseUpdate
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	disease, err := h.svc.UpdateDisease(c.Request().Context(), id, update)
	if err != nil {
		return adminHTTPError(err)
	}
	return c.JSON(http.StatusOK, disease)
}

// DeleteDisease handles DELETE /api/admin/diseases/:id.
func (h *Handler) DeleteDisease(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, ErrDiseaseNotFound.Error())
	}
	if err := h.svc.DeleteDisease(c.Request().Context(), id); err != nil {
		return adminHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type symptomRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    *string `json:"category"`
}

// CreateSymptom handles POST /api/admin/symptoms.
func (h *Handler) CreateSymptom(c echo.Context) error {
	var req symptomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	symptom := &Symptom{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
	}
	created, err := h.svc.CreateSymptom(c.Request().Context(), symptom)
	if err != nil {
		return adminHTTPError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// ListSymptoms handles GET /api/admin/symptoms.
func (h *Handler) ListSymptoms(c echo.Context) error {
	p := pagination.WithDefault(c, listLimit)
	symptoms, err := h.svc.ListSymptoms(c.Request().Context(), p.Skip, p.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list symptoms")
	}
	if symptoms == nil {
		symptoms = []*Symptom{}
	}
	return c.JSON(http.StatusOK, symptoms)
}

// GetSymptom handles GET /api/admin/symptoms/:id.
func (h *Handler) GetSymptom(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, ErrSymptomNotFound.Error())
	}
	symptom, err := h.svc.GetSymptom(c.Request().Context(), id)
	if err != nil {
		return adminHTTPError(err)
	}
	return c.JSON(http.StatusOK, symptom)
}

// UpdateSymptom handles PUT /api/admin/symptoms/:id.
func (h *Handler) UpdateSymptom(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, ErrSymptomNotFound.Error())
	}
	var update SymptomUpdate
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	symptom, err := h.svc.UpdateSymptom(c.Request().Context(), id, update)
	if err != nil {
		return adminHTTPError(err)
	}
	return c.JSON(http.StatusOK, symptom)
}

// DeleteSymptom handles DELETE /api/admin/symptoms/:id.
func (h *Handler) DeleteSymptom(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, ErrSymptomNotFound.Error())
	}
	if err := h.svc.DeleteSymptom(c.Request().Context(), id); err != nil {
		return adminHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Analytics handles GET /api/admin/analytics and its /overview alias.
func (h *Handler) Analytics(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Analytics(c.Request().Context()))
}

// currentAdminID returns the authenticated admin's id, or nil when the
// identity carries no parseable id.
func currentAdminID(c echo.Context) *uuid.UUID {
	id, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return nil
	}
	return &id
}

func adminHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, ErrDiseaseNotFound),
		errors.Is(err, ErrSymptomNotFound),
		errors.Is(err, identity.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}
