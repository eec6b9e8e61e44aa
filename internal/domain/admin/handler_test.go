package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mednex/mednex/internal/domain/identity"
	"github.com/mednex/mednex/internal/platform/auth"
)

func newTestAPI(diagnoses DiagnosisCounter) (*echo.Echo, *Service, *identity.Service) {
	svc, users := newTestService(diagnoses)
	e := echo.New()
	NewHandler(svc).RegisterRoutes(e.Group("/api/admin"))
	return e, svc, users
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return body
}

func errMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	msg, _ := decodeBody(t, rec)["message"].(string)
	return msg
}

func TestHandler_DiseaseLifecycle(t *testing.T) {
	e, _, _ := newTestAPI(stubCounter{})

	rec := doJSON(e, http.MethodPost, "/api/admin/diseases",
		`{"name":"Influenza","description":"Viral respiratory infection","symptoms":["fever","cough"],"treatment":"Rest and fluids","severity":"medium"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	id, _ := decodeBody(t, rec)["id"].(string)
	if id == "" {
		t.Fatal("missing id in create response")
	}

	rec = doJSON(e, http.MethodGet, "/api/admin/diseases/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["name"] != "Influenza" || body["severity"] != "medium" {
		t.Errorf("unexpected disease: %v", body)
	}

	rec = doJSON(e, http.MethodPut, "/api/admin/diseases/"+id, `{"severity":"high"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if body := decodeBody(t, rec); body["severity"] != "high" {
		t.Errorf("severity not updated: %v", body["severity"])
	}

	rec = doJSON(e, http.MethodDelete, "/api/admin/diseases/"+id, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/api/admin/diseases/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if msg := errMessage(t, rec); msg != "Disease not found" {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestHandler_CreateDisease_InvalidSeverity(t *testing.T) {
	e, _, _ := newTestAPI(stubCounter{})

	rec := doJSON(e, http.MethodPost, "/api/admin/diseases",
		`{"name":"Influenza","description":"d","treatment":"t","severity":"fatal"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := errMessage(t, rec); msg != "severity must be one of low, medium, high, critical" {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestHandler_GetDisease_MalformedID(t *testing.T) {
	e, _, _ := newTestAPI(stubCounter{})

	rec := doJSON(e, http.MethodGet, "/api/admin/diseases/not-a-uuid", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if msg := errMessage(t, rec); msg != "Disease not found" {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestHandler_ListDiseases_EmptyArray(t *testing.T) {
	e, _, _ := newTestAPI(stubCounter{})

	rec := doJSON(e, http.MethodGet, "/api/admin/diseases", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("expected empty array, got %q", body)
	}
}

func TestHandler_SymptomLifecycle(t *testing.T) {
	e, _, _ := newTestAPI(stubCounter{})

	rec := doJSON(e, http.MethodPost, "/api/admin/symptoms",
		`{"name":"Fever","description":"Elevated body temperature","category":"general"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	id, _ := decodeBody(t, rec)["id"].(string)

	rec = doJSON(e, http.MethodPut, "/api/admin/symptoms/"+id, `{"name":"High Fever"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if body := decodeBody(t, rec); body["name"] != "High Fever" || body["category"] != "general" {
		t.Errorf("unexpected symptom: %v", body)
	}

	rec = doJSON(e, http.MethodDelete, "/api/admin/symptoms/"+id, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/api/admin/symptoms/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if msg := errMessage(t, rec); msg != "Symptom not found" {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestHandler_UserManagement(t *testing.T) {
	e, _, users := newTestAPI(stubCounter{})
	registered, err := users.Register(context.Background(), "jane@example.com", "Jane Doe", "secret1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := doJSON(e, http.MethodGet, "/api/admin/users", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0]["email"] != "jane@example.com" {
		t.Errorf("unexpected users: %v", list)
	}

	rec = doJSON(e, http.MethodPut, "/api/admin/users/"+registered.ID.String(), `{"is_active":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if body := decodeBody(t, rec); body["is_active"] != false {
		t.Errorf("user not deactivated: %v", body)
	}

	rec = doJSON(e, http.MethodDelete, "/api/admin/users/"+registered.ID.String(), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/api/admin/users/"+registered.ID.String(), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if msg := errMessage(t, rec); msg != "User not found" {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestHandler_Analytics(t *testing.T) {
	e, svc, users := newTestAPI(stubCounter{n: 4})
	if _, err := users.Register(context.Background(), "a@example.com", "User", "secret1", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.CreateDisease(context.Background(), testDisease()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, path := range []string{"/api/admin/analytics", "/api/admin/analytics/overview"} {
		rec := doJSON(e, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
		body := decodeBody(t, rec)
		if body["total_users"] != float64(1) || body["total_diseases"] != float64(1) ||
			body["total_symptoms"] != float64(0) || body["total_diagnoses"] != float64(4) {
			t.Errorf("%s: unexpected analytics: %v", path, body)
		}
	}
}

func TestHandler_AdminRoleRequired(t *testing.T) {
	svc, _ := newTestService(stubCounter{})
	tokens := auth.TokenConfig{Secret: []byte("test-secret"), TTL: time.Hour}

	e := echo.New()
	guarded := e.Group("/api/admin", auth.JWTMiddleware(tokens.Secret), auth.RequireRole("admin"))
	NewHandler(svc).RegisterRoutes(guarded)

	customerToken, err := tokens.IssueToken(uuid.New().String(), "customer@example.com", "customer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	adminToken, err := tokens.IssueToken(uuid.New().String(), "admin@example.com", "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/analytics", nil)
	req.Header.Set("Authorization", "Bearer "+customerToken)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if msg := errMessage(t, rec); msg != "Admin access required" {
		t.Errorf("unexpected message: %q", msg)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/analytics", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
