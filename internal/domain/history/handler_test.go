package history

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mednex/mednex/internal/platform/auth"
)

var testTokens = auth.TokenConfig{Secret: []byte("test-secret"), TTL: time.Hour}

func newTestAPI() (*echo.Echo, *Service) {
	svc := newTestService()
	e := echo.New()
	NewHandler(svc).RegisterRoutes(e.Group("/api/customer", auth.JWTMiddleware(testTokens.Secret)))
	return e, svc
}

func customerToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := testTokens.IssueToken(userID.String(), "customer@example.com", "customer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return token
}

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
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

func TestHandler_SaveAndFetch(t *testing.T) {
	e, _ := newTestAPI()
	userID := uuid.New()
	token := customerToken(t, userID)

	rec := doJSON(e, http.MethodPost, "/api/customer/save-diagnosis",
		`{"symptoms":["fever","cough"],"predicted_diseases":[{"disease":"Influenza","confidence":0.82}]}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatal("missing id in save response")
	}
	if body["user_id"] != userID.String() {
		t.Errorf("unexpected user_id: %v", body["user_id"])
	}

	rec = doJSON(e, http.MethodGet, "/api/customer/diagnosis-history/"+id, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body = decodeBody(t, rec)
	predictions, _ := body["predicted_diseases"].([]interface{})
	if len(predictions) != 1 {
		t.Fatalf("unexpected predictions: %v", body["predicted_diseases"])
	}
	if p, _ := predictions[0].(map[string]interface{}); p["disease"] != "Influenza" || p["confidence"] != 0.82 {
		t.Errorf("unexpected prediction: %v", predictions[0])
	}
}

func TestHandler_History(t *testing.T) {
	e, svc := newTestAPI()
	userID := uuid.New()
	token := customerToken(t, userID)
	mustSave(t, svc, userID, []string{"fever"})
	mustSave(t, svc, userID, []string{"cough"})

	rec := doJSON(e, http.MethodGet, "/api/customer/diagnosis-history", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var records []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	first, _ := records[0]["symptoms"].([]interface{})
	if len(first) != 1 || first[0] != "cough" {
		t.Errorf("records not newest first: %v", records[0]["symptoms"])
	}
}

func TestHandler_History_EmptyArray(t *testing.T) {
	e, _ := newTestAPI()
	token := customerToken(t, uuid.New())

	rec := doJSON(e, http.MethodGet, "/api/customer/diagnosis-history", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("expected empty array, got %q", body)
	}
}

func TestHandler_GetDiagnosis_NotFound(t *testing.T) {
	e, _ := newTestAPI()
	token := customerToken(t, uuid.New())

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		rec := doJSON(e, http.MethodGet, "/api/customer/diagnosis-history/"+id, "", token)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("id %q: expected 404, got %d", id, rec.Code)
		}
		if msg := errMessage(t, rec); msg != "Diagnosis record not found" {
			t.Errorf("id %q: unexpected message: %q", id, msg)
		}
	}
}

func TestHandler_ForeignRecordDenied(t *testing.T) {
	e, svc := newTestAPI()
	owner := uuid.New()
	saved := mustSave(t, svc, owner, []string{"fever"})
	intruderToken := customerToken(t, uuid.New())

	rec := doJSON(e, http.MethodGet, "/api/customer/diagnosis-history/"+saved.ID.String(), "", intruderToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if msg := errMessage(t, rec); msg != "Access denied" {
		t.Errorf("unexpected message: %q", msg)
	}

	rec = doJSON(e, http.MethodDelete, "/api/customer/diagnosis-history/"+saved.ID.String(), "", intruderToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 on delete, got %d", rec.Code)
	}
}

func TestHandler_DeleteDiagnosis(t *testing.T) {
	e, svc := newTestAPI()
	userID := uuid.New()
	token := customerToken(t, userID)
	saved := mustSave(t, svc, userID, []string{"fever"})

	rec := doJSON(e, http.MethodDelete, "/api/customer/diagnosis-history/"+saved.ID.String(), "", token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/api/customer/diagnosis-history/"+saved.ID.String(), "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestHandler_Statistics(t *testing.T) {
	e, svc := newTestAPI()
	userID := uuid.New()
	token := customerToken(t, userID)
	mustSave(t, svc, userID, []string{"fever", "cough"})
	mustSave(t, svc, userID, []string{"fever"})

	rec := doJSON(e, http.MethodGet, "/api/customer/statistics", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["total_diagnoses"] != float64(2) {
		t.Errorf("unexpected total: %v", body["total_diagnoses"])
	}
	recent, _ := body["recent_diagnoses"].([]interface{})
	if len(recent) != 2 {
		t.Errorf("unexpected recent count: %v", body["recent_diagnoses"])
	}
	symptoms, _ := body["most_common_symptoms"].([]interface{})
	if len(symptoms) != 2 || symptoms[0] != "fever" || symptoms[1] != "cough" {
		t.Errorf("unexpected top symptoms: %v", body["most_common_symptoms"])
	}
}

func TestHandler_MissingToken(t *testing.T) {
	e, _ := newTestAPI()

	rec := doJSON(e, http.MethodGet, "/api/customer/diagnosis-history", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
