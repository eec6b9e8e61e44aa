package graph

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// TreatmentSource resolves richer treatment lists for a disease, usually
// backed by the disease catalog. Implementations may return an empty list
// or an error; the builder then falls back to its static table.
type TreatmentSource interface {
	TreatmentsForDisease(ctx context.Context, disease string) ([]string, error)
}

// SnapshotStore persists built graphs for later inspection.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, g *Graph) error
}

// Service builds knowledge graphs from symptom and disease names.
type Service struct {
	treatments TreatmentSource
	store      SnapshotStore
	logger     zerolog.Logger
}

// NewService creates a graph service. Both treatments and store may be
// nil; the service then relies on built-in treatment data and skips
// snapshot persistence.
func NewService(treatments TreatmentSource, store SnapshotStore, logger zerolog.Logger) *Service {
	return &Service{treatments: treatments, store: store, logger: logger}
}

// BuildGraph assembles the knowledge graph for the given inputs. Build
// failures degrade to a minimal fallback graph rather than an error, and
// snapshot persistence problems are logged but never surfaced.
func (s *Service) BuildGraph(ctx context.Context, symptoms, diseases []string) *Graph {
	g := s.buildSafe(ctx, symptoms, diseases)
	if s.store != nil {
		if err := s.store.SaveSnapshot(ctx, g); err != nil {
			s.logger.Warn().Err(err).Msg("failed to persist graph snapshot")
		}
	}
	return g
}

func (s *Service) buildSafe(ctx context.Context, symptoms, diseases []string) (g *Graph) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("graph build failed")
			g = fallbackGraph(symptoms, diseases)
		}
	}()
	return build(symptoms, diseases, func(disease string) []string {
		return s.resolveTreatments(ctx, disease)
	})
}

// resolveTreatments asks the treatment source first and falls back to the
// static table keyed by lowercased disease name.
func (s *Service) resolveTreatments(ctx context.Context, disease string) []string {
	if s.treatments != nil {
		list, err := s.treatments.TreatmentsForDisease(ctx, disease)
		if err != nil {
			s.logger.Debug().Err(err).Str("disease", disease).Msg("treatment lookup failed")
		} else if len(list) > 0 {
			return list
		}
	}
	if list, ok := staticTreatments[strings.ToLower(disease)]; ok {
		return list
	}
	return defaultTreatmentList
}
