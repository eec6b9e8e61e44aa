package admin

import (
	"time"

	"github.com/google/uuid"
)

const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

func validSeverity(s string) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Disease maps to the diseases table.
type Disease struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Description string     `db:"description" json:"description"`
	Symptoms    []string   `db:"symptoms" json:"symptoms"`
	Treatment   string     `db:"treatment" json:"treatment"`
	Severity    string     `db:"severity" json:"severity"`
	Category    *string    `db:"category" json:"category,omitempty"`
	CreatedBy   *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// DiseaseUpdate carries a partial update; nil fields are left unchanged.
type DiseaseUpdate struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Symptoms    *[]string `json:"symptoms"`
	Treatment   *string   `json:"treatment"`
	Severity    *string   `json:"severity"`
	Category    *string   `json:"category"`
}

// Symptom maps to the symptoms table.
type Symptom struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Category    *string   `db:"category" json:"category,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// SymptomUpdate carries a partial update; nil fields are left unchanged.
type SymptomUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

// Analytics is the admin overview: totals across the main collections.
type Analytics struct {
	TotalUsers     int `json:"total_users"`
	TotalDiseases  int `json:"total_diseases"`
	TotalSymptoms  int `json:"total_symptoms"`
	TotalDiagnoses int `json:"total_diagnoses"`
}
