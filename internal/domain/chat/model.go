package chat

// Message is one turn of the conversation as the client sends it.
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Reply is the assistant's answer together with conversation guidance.
type Reply struct {
	Response           string   `json:"response"`
	FollowUp           bool     `json:"follow_up"`
	SuggestedQuestions []string `json:"suggested_questions"`
	ExtractedSymptoms  []string `json:"extracted_symptoms"`
	Confidence         float64  `json:"confidence"`
}
