package extraction

// Entity is a single recognized span in the input text. Offsets index into
// the normalized (lowercased) text.
type Entity struct {
	Text       string  `json:"text"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
}

// Extraction is the full result for one text input.
type Extraction struct {
	Symptoms         []string           `json:"symptoms"`
	Entities         []Entity           `json:"entities"`
	ConfidenceScores map[string]float64 `json:"confidence_scores"`
}
