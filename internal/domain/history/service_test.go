package history

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func newTestService() *Service {
	return NewService(NewRepoMem(), zerolog.Nop())
}

func mustSave(t *testing.T, svc *Service, userID uuid.UUID, symptoms []string) *Record {
	t.Helper()
	rec, err := svc.Save(context.Background(), userID, symptoms,
		[]map[string]interface{}{{"disease": "Influenza", "confidence": 0.82}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rec
}

func TestService_SaveAndGet(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	saved := mustSave(t, svc, userID, []string{"fever", "cough"})
	if saved.ID == uuid.Nil {
		t.Error("id not assigned")
	}
	if saved.Timestamp.IsZero() {
		t.Error("timestamp not assigned")
	}

	got, err := svc.Get(context.Background(), userID, saved.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got.Symptoms, []string{"fever", "cough"}) {
		t.Errorf("unexpected symptoms: %#v", got.Symptoms)
	}
	if len(got.PredictedDiseases) != 1 || got.PredictedDiseases[0]["disease"] != "Influenza" {
		t.Errorf("unexpected predictions: %#v", got.PredictedDiseases)
	}
}

func TestService_Save_NormalizesNil(t *testing.T) {
	svc := newTestService()

	rec, err := svc.Save(context.Background(), uuid.New(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Symptoms == nil || rec.PredictedDiseases == nil {
		t.Errorf("nil fields not normalized: %+v", rec)
	}
}

func TestService_Get_NotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.Get(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if err.Error() != "Diagnosis record not found" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestService_Get_ForeignRecord(t *testing.T) {
	svc := newTestService()
	owner := uuid.New()
	saved := mustSave(t, svc, owner, []string{"fever"})

	_, err := svc.Get(context.Background(), uuid.New(), saved.ID)
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if err.Error() != "Access denied" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestService_Delete(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()
	saved := mustSave(t, svc, userID, []string{"fever"})

	if err := svc.Delete(context.Background(), userID, saved.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(context.Background(), userID, saved.ID); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("second delete: expected ErrRecordNotFound, got %v", err)
	}
}

func TestService_Delete_ForeignRecordKept(t *testing.T) {
	svc := newTestService()
	owner := uuid.New()
	saved := mustSave(t, svc, owner, []string{"fever"})

	if err := svc.Delete(context.Background(), uuid.New(), saved.ID); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if _, err := svc.Get(context.Background(), owner, saved.ID); err != nil {
		t.Errorf("record should survive denied delete: %v", err)
	}
}

func TestService_History_NewestFirst(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()
	first := mustSave(t, svc, userID, []string{"fever"})
	second := mustSave(t, svc, userID, []string{"cough"})
	third := mustSave(t, svc, userID, []string{"nausea"})

	records, err := svc.History(context.Background(), userID, 0, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].ID != third.ID || records[1].ID != second.ID || records[2].ID != first.ID {
		t.Errorf("records not newest first: %v, %v, %v", records[0].ID, records[1].ID, records[2].ID)
	}

	page, err := svc.History(context.Background(), userID, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != 1 || page[0].ID != second.ID {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestService_History_ScopedToUser(t *testing.T) {
	svc := newTestService()
	alice := uuid.New()
	bob := uuid.New()
	mustSave(t, svc, alice, []string{"fever"})
	mustSave(t, svc, bob, []string{"cough"})

	records, err := svc.History(context.Background(), alice, 0, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || !reflect.DeepEqual(records[0].Symptoms, []string{"fever"}) {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestService_Statistics(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()
	for _, symptoms := range [][]string{
		{"fever", "cough"},
		{"fever"},
		{"headache", "fever"},
		{"cough"},
		{"nausea"},
		{"headache"},
		{"fatigue"},
	} {
		mustSave(t, svc, userID, symptoms)
	}

	stats, err := svc.Statistics(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalDiagnoses != 7 {
		t.Errorf("expected 7 total, got %d", stats.TotalDiagnoses)
	}
	if len(stats.RecentDiagnoses) != 5 {
		t.Errorf("expected 5 recent, got %d", len(stats.RecentDiagnoses))
	}
	if !reflect.DeepEqual(stats.RecentDiagnoses[0].Symptoms, []string{"fatigue"}) {
		t.Errorf("recent not newest first: %#v", stats.RecentDiagnoses[0].Symptoms)
	}
	if !reflect.DeepEqual(stats.MostCommonSymptoms, []string{"fever", "cough", "headache"}) {
		t.Errorf("unexpected top symptoms: %#v", stats.MostCommonSymptoms)
	}
}

func TestService_Statistics_Empty(t *testing.T) {
	svc := newTestService()

	stats, err := svc.Statistics(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalDiagnoses != 0 {
		t.Errorf("expected 0 total, got %d", stats.TotalDiagnoses)
	}
	if stats.RecentDiagnoses == nil || len(stats.RecentDiagnoses) != 0 {
		t.Errorf("expected empty recent list, got %#v", stats.RecentDiagnoses)
	}
	if stats.MostCommonSymptoms == nil || len(stats.MostCommonSymptoms) != 0 {
		t.Errorf("expected empty symptom list, got %#v", stats.MostCommonSymptoms)
	}
}

func TestTopSymptoms(t *testing.T) {
	tests := []struct {
		name     string
		symptoms []string
		want     []string
	}{
		{"ranks by frequency", []string{"cough", "fever", "fever", "nausea", "cough", "fever"}, []string{"fever", "cough", "nausea"}},
		{"ties break alphabetically", []string{"cough", "headache"}, []string{"cough", "headache"}},
		{"case insensitive", []string{"Fever", "fever", "COUGH"}, []string{"fever", "cough"}},
		{"skips blanks", []string{"", "  ", "fever"}, []string{"fever"}},
		{"empty input", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := topSymptoms(tt.symptoms, 3); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %#v, got %#v", tt.want, got)
			}
		})
	}
}
