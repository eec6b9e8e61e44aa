package matcher

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Scoring tunables. Kept exactly as shipped: the frontend's confidence
// bands and the stored history rows assume them.
const (
	exactMatchScore   = 1.0
	partialMatchScore = 0.7
	fallbackCutoff    = 20.0
	maxResults        = 5

	severityHighMin   = 70.0
	severityMediumMin = 40.0
)

// Service scores symptom lists against the loaded disease table. The table
// is never mutated after construction, so concurrent Predict calls need no
// coordination.
type Service struct {
	diseases []DiseaseRecord
	logger   zerolog.Logger
}

func NewService(diseases []DiseaseRecord, logger zerolog.Logger) *Service {
	return &Service{diseases: diseases, logger: logger}
}

// Diseases returns the loaded table.
func (s *Service) Diseases() []DiseaseRecord {
	return s.diseases
}

// Predict ranks every disease by symptom overlap with the given input and
// returns the top candidates with the elapsed processing time. It never
// returns an error: scoring failures and no-match inputs both degrade to the
// two-entry general-advice fallback.
func (s *Service) Predict(symptoms []string) Prediction {
	start := time.Now()

	cleaned := normalizeSymptoms(symptoms)
	diseases := s.rank(cleaned)
	if len(diseases) == 0 || diseases[0].Confidence < fallbackCutoff {
		diseases = generalRecommendations(cleaned)
	}

	return Prediction{
		Diseases:       diseases,
		ProcessingTime: round3(time.Since(start).Seconds()),
	}
}

// rank produces candidates sorted by confidence descending; ties keep the
// table order. A panic while scoring is recovered and reported as an empty
// list so Predict falls back to general advice.
func (s *Service) rank(symptoms []string) (results []MatchResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("disease scoring failed")
			results = nil
		}
	}()

	for _, d := range s.diseases {
		slots := normalizeSymptoms(d.Symptoms)
		confidence := scoreOverlap(symptoms, slots)
		if confidence == 0 {
			continue
		}
		results = append(results, MatchResult{
			Name:             d.Name,
			Confidence:       confidence,
			Description:      d.Description,
			Treatment:        d.Treatment,
			Severity:         severityFor(confidence),
			MatchingSymptoms: matchingSymptoms(symptoms, slots),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// scoreOverlap computes the 0-100 confidence for one disease. Each user
// symptom scans the disease slots in order and scores against the first slot
// it matches: equality counts 1.0, containment either way counts 0.7.
func scoreOverlap(userSymptoms, diseaseSymptoms []string) float64 {
	if len(userSymptoms) == 0 || len(diseaseSymptoms) == 0 {
		return 0
	}

	total := 0.0
	for _, u := range userSymptoms {
		for _, d := range diseaseSymptoms {
			if u == d {
				total += exactMatchScore
				break
			}
			if strings.Contains(d, u) || strings.Contains(u, d) {
				total += partialMatchScore
				break
			}
		}
	}

	confidence := (total / float64(len(userSymptoms))) * 100
	return round2(math.Min(confidence, 100))
}

// matchingSymptoms reports which user symptoms matched any slot of the
// disease, in input order, without duplicates.
func matchingSymptoms(userSymptoms, diseaseSymptoms []string) []string {
	matches := make([]string, 0, len(userSymptoms))
	seen := make(map[string]bool, len(userSymptoms))
	for _, u := range userSymptoms {
		if seen[u] {
			continue
		}
		for _, d := range diseaseSymptoms {
			if u == d || strings.Contains(d, u) || strings.Contains(u, d) {
				matches = append(matches, u)
				seen[u] = true
				break
			}
		}
	}
	return matches
}

func severityFor(confidence float64) string {
	switch {
	case confidence >= severityHighMin:
		return "High"
	case confidence >= severityMediumMin:
		return "Medium"
	default:
		return "Low"
	}
}

// generalRecommendations is the advisory pair returned when nothing scored
// above the cutoff. The caller is never left empty-handed.
func generalRecommendations(symptoms []string) []MatchResult {
	return []MatchResult{
		{
			Name:       "General Health Consultation",
			Confidence: 60.0,
			Description: fmt.Sprintf(
				"Based on your symptoms (%s), we recommend consulting a healthcare professional for proper evaluation.",
				strings.Join(firstN(symptoms, 3), ", ")),
			Treatment:        "Schedule an appointment with your doctor or visit a clinic for professional medical advice.",
			Severity:         "Medium",
			MatchingSymptoms: firstN(symptoms, 3),
		},
		{
			Name:             "Symptomatic Care",
			Confidence:       40.0,
			Description:      "General symptomatic care may help while you seek professional medical advice.",
			Treatment:        "Rest, stay hydrated, monitor symptoms, and seek medical attention if symptoms worsen.",
			Severity:         "Low",
			MatchingSymptoms: firstN(symptoms, 2),
		},
	}
}

// normalizeSymptoms trims, lowercases and drops blank entries.
func normalizeSymptoms(symptoms []string) []string {
	out := make([]string, 0, len(symptoms))
	for _, s := range symptoms {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func firstN(values []string, n int) []string {
	if n > len(values) {
		n = len(values)
	}
	return append(make([]string, 0, n), values[:n]...)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
