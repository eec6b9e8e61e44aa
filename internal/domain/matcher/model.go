package matcher

// DiseaseRecord is one row of the in-memory disease lookup table. The table
// is built once at startup and is read-only afterwards.
type DiseaseRecord struct {
	Name        string
	Symptoms    []string
	Description string
	Treatment   string
}

// MatchResult is a single ranked disease candidate.
type MatchResult struct {
	Name             string   `json:"name"`
	Confidence       float64  `json:"confidence"`
	Description      string   `json:"description"`
	Treatment        string   `json:"treatment"`
	Severity         string   `json:"severity"`
	MatchingSymptoms []string `json:"matching_symptoms"`
}

// Prediction is the scorer's output for a single call.
type Prediction struct {
	Diseases       []MatchResult `json:"diseases"`
	ProcessingTime float64       `json:"processing_time"`
}
