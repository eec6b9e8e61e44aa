package extraction

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

var tokenPattern = regexp.MustCompile(`[a-z]+`)

// Service runs the configured engine and enriches its output with
// vocabulary folding, so "coughing" and "feverr" still land on the
// canonical terms the disease matcher knows.
type Service struct {
	engine Engine
	vocab  *Vocabulary
	logger zerolog.Logger
}

func NewService(engine Engine, vocab *Vocabulary, logger zerolog.Logger) *Service {
	return &Service{engine: engine, vocab: vocab, logger: logger}
}

// Extract never fails outward: an engine error degrades to the rule-based
// extractor, which cannot error.
func (s *Service) Extract(ctx context.Context, text string) *Extraction {
	result, err := s.engine.Extract(ctx, text)
	if err != nil {
		s.logger.Warn().Err(err).Msg("extraction engine failed, using rule-based fallback")
		result, _ = NewRuleEngine().Extract(ctx, text)
	}

	s.enrich(text, result)
	return result
}

// enrich adds canonical vocabulary terms for tokens the engine missed.
func (s *Service) enrich(text string, result *Extraction) {
	if s.vocab == nil {
		return
	}

	present := make(map[string]bool, len(result.Symptoms))
	for _, sym := range result.Symptoms {
		present[sym] = true
	}

	lowered := strings.ToLower(text)
	for _, loc := range tokenPattern.FindAllStringIndex(lowered, -1) {
		token := lowered[loc[0]:loc[1]]
		term, ok := s.vocab.Canonicalize(token)
		if !ok || present[term] {
			continue
		}
		present[term] = true
		result.Symptoms = append(result.Symptoms, term)
		result.Entities = append(result.Entities, Entity{
			Text:       term,
			Label:      symptomLabel,
			Confidence: ruleMatchConfidence,
			Start:      loc[0],
			End:        loc[1],
		})
		result.ConfidenceScores[term] = ruleMatchConfidence
	}
}
