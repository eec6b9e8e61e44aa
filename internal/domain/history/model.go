package history

import (
	"time"

	"github.com/google/uuid"
)

// Record maps to the diagnosis_history table. PredictedDiseases keeps the
// matcher output as stored, without reinterpreting its shape.
type Record struct {
	ID                uuid.UUID                `db:"id" json:"id"`
	UserID            uuid.UUID                `db:"user_id" json:"user_id"`
	Symptoms          []string                 `db:"symptoms" json:"symptoms"`
	PredictedDiseases []map[string]interface{} `db:"predicted_diseases" json:"predicted_diseases"`
	Timestamp         time.Time                `db:"timestamp" json:"timestamp"`
}

// Statistics summarizes a user's diagnosis activity.
type Statistics struct {
	TotalDiagnoses     int       `json:"total_diagnoses"`
	RecentDiagnoses    []*Record `json:"recent_diagnoses"`
	MostCommonSymptoms []string  `json:"most_common_symptoms"`
}
