package explanation

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Service resolves medical term explanations, preferring the curated
// store over the built-in dictionary.
type Service struct {
	repo   Repo
	logger zerolog.Logger
}

// NewService creates an explanation service. repo may be nil, leaving
// only the built-in dictionary.
func NewService(repo Repo, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Explain always answers: curated store first, then the built-in
// dictionary, then a generic pointer to professional advice.
func (s *Service) Explain(ctx context.Context, term string) *Explanation {
	clean := strings.ToLower(strings.TrimSpace(term))

	if s.repo != nil {
		e, err := s.repo.FindByTerm(ctx, clean)
		if err != nil {
			s.logger.Warn().Err(err).Str("term", clean).Msg("explanation lookup failed")
		}
		if e != nil {
			if e.RelatedTerms == nil {
				e.RelatedTerms = []string{}
			}
			return e
		}
	}

	if e, ok := staticExplanations[clean]; ok {
		return &e
	}

	return &Explanation{
		Term:         clean,
		Definition:   "Medical term: " + clean + ". Please consult healthcare professionals for detailed information.",
		Source:       "System",
		RelatedTerms: []string{},
	}
}
