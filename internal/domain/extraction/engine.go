package extraction

import (
	"context"
	"regexp"
	"strings"
)

const (
	symptomLabel        = "SYMPTOM"
	ruleMatchConfidence = 0.7
)

// Engine recognizes symptom mentions in free text. External NER backends
// satisfy the same interface; the shipped implementation is rule-based.
type Engine interface {
	Extract(ctx context.Context, text string) (*Extraction, error)
}

// symptomPatterns covers the common single-word complaints, their qualified
// forms, and the multiword phrases the matcher's vocabulary uses.
var symptomPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:severe|mild|chronic|acute|sharp|dull)?\s*(?:pain|ache|aching)\b`),
	regexp.MustCompile(`\b(?:high|low)?\s*fever\b`),
	regexp.MustCompile(`\b(?:dry|persistent|chronic)?\s*cough\b`),
	regexp.MustCompile(`\bheadache\b`),
	regexp.MustCompile(`\bnausea\b`),
	regexp.MustCompile(`\bvomiting\b`),
	regexp.MustCompile(`\bdiarrhea\b`),
	regexp.MustCompile(`\bconstipation\b`),
	regexp.MustCompile(`\bfatigue\b`),
	regexp.MustCompile(`\btired\b`),
	regexp.MustCompile(`\bdizziness\b`),
	regexp.MustCompile(`\bswelling\b`),
	regexp.MustCompile(`\brash\b`),
	regexp.MustCompile(`\bitch(?:ing|y)?\b`),
	regexp.MustCompile(`\bburning\b`),
	regexp.MustCompile(`\btingling\b`),
	regexp.MustCompile(`\bnumbness\b`),
	regexp.MustCompile(`\bweakness\b`),
	regexp.MustCompile(`\bshortness of breath\b`),
	regexp.MustCompile(`\bdifficulty breathing\b`),
	regexp.MustCompile(`\bchest pain\b`),
	regexp.MustCompile(`\bstomach ache\b`),
	regexp.MustCompile(`\bsore throat\b`),
	regexp.MustCompile(`\brunny nose\b`),
	regexp.MustCompile(`\bstuff(?:y|ed) nose\b`),
}

// RuleEngine extracts symptoms with a curated regex pattern set. It is pure
// and never returns an error.
type RuleEngine struct{}

func NewRuleEngine() *RuleEngine {
	return &RuleEngine{}
}

func (e *RuleEngine) Extract(_ context.Context, text string) (*Extraction, error) {
	lowered := strings.ToLower(text)

	result := &Extraction{
		Symptoms:         make([]string, 0, 4),
		Entities:         make([]Entity, 0, 4),
		ConfidenceScores: make(map[string]float64, 4),
	}

	seen := make(map[string]bool)
	for _, pattern := range symptomPatterns {
		for _, loc := range pattern.FindAllStringIndex(lowered, -1) {
			match := strings.TrimSpace(lowered[loc[0]:loc[1]])
			if match == "" || seen[match] {
				continue
			}
			seen[match] = true
			result.Symptoms = append(result.Symptoms, match)
			result.Entities = append(result.Entities, Entity{
				Text:       match,
				Label:      symptomLabel,
				Confidence: ruleMatchConfidence,
				Start:      loc[1] - len(match),
				End:        loc[1],
			})
			result.ConfidenceScores[match] = ruleMatchConfidence
		}
	}
	return result, nil
}
