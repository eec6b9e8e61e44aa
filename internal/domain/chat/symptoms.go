package chat

import (
	"regexp"
	"strings"
)

const maxExtractedSymptoms = 10

// conversationPatterns pick symptom mentions out of free-form chat text.
// The first pattern captures whatever follows a reporting phrase up to the
// end of the sentence; the rest match known symptom words.
var conversationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:i have|experiencing|feeling|suffering from)\s+([^.!?]+)`),
	regexp.MustCompile(`\b(pain|ache|fever|cough|headache|nausea|fatigue|dizziness)\b`),
	regexp.MustCompile(`\b(swelling|rash|burning|tingling|numbness|weakness)\b`),
	regexp.MustCompile(`\b(shortness of breath|difficulty breathing|chest pain)\b`),
	regexp.MustCompile(`\b(stomach ache|sore throat|runny nose|stuffy nose)\b`),
}

var extractionStopwords = map[string]bool{
	"the":  true,
	"and":  true,
	"or":   true,
	"but":  true,
	"with": true,
}

// extractSymptoms scans the current message plus the last five user turns
// of the history for symptom mentions.
func extractSymptoms(message string, history []Message) []string {
	var sb strings.Builder
	sb.WriteString(message)
	start := len(history) - 5
	if start < 0 {
		start = 0
	}
	for _, msg := range history[start:] {
		if msg.Role == "user" {
			sb.WriteString(" ")
			sb.WriteString(msg.Content)
		}
	}
	text := strings.ToLower(sb.String())

	symptoms := make([]string, 0)
	seen := make(map[string]bool)
	for _, pattern := range conversationPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			s := strings.TrimSpace(m[1])
			if len(s) <= 2 || extractionStopwords[s] || seen[s] {
				continue
			}
			seen[s] = true
			symptoms = append(symptoms, s)
		}
	}
	if len(symptoms) > maxExtractedSymptoms {
		symptoms = symptoms[:maxExtractedSymptoms]
	}
	return symptoms
}
