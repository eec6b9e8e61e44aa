package history

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Sentinel errors carry the exact messages the API serves.
var (
	ErrRecordNotFound = errors.New("Diagnosis record not found")
	ErrAccessDenied   = errors.New("Access denied")
)

const (
	recentLimit     = 5
	topSymptomCount = 3
)

// Service implements per-user diagnosis history with ownership checks.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

// NewService creates a history service.
func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Save stores a diagnosis result in the user's history.
func (s *Service) Save(ctx context.Context, userID uuid.UUID, symptoms []string, predicted []map[string]interface{}) (*Record, error) {
	if symptoms == nil {
		symptoms = []string{}
	}
	if predicted == nil {
		predicted = []map[string]interface{}{}
	}
	rec := &Record{
		UserID:            userID,
		Symptoms:          symptoms,
		PredictedDiseases: predicted,
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save diagnosis: %w", err)
	}
	s.logger.Info().Str("user_id", userID.String()).Msg("diagnosis saved")
	return rec, nil
}

// History returns the user's records newest first.
func (s *Service) History(ctx context.Context, userID uuid.UUID, skip, limit int) ([]*Record, error) {
	return s.repo.ListByUser(ctx, userID, skip, limit)
}

// Get returns one record. The record must exist and belong to the user;
// existence is checked first so a foreign id still reads as not found
// only when it truly is.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Record, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup diagnosis: %w", err)
	}
	if rec == nil {
		return nil, ErrRecordNotFound
	}
	if rec.UserID != userID {
		return nil, ErrAccessDenied
	}
	return rec, nil
}

// Delete removes one record after the same existence and ownership checks
// as Get.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("lookup diagnosis: %w", err)
	}
	if rec == nil {
		return ErrRecordNotFound
	}
	if rec.UserID != userID {
		return ErrAccessDenied
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete diagnosis: %w", err)
	}
	if !deleted {
		return ErrRecordNotFound
	}
	s.logger.Info().Str("diagnosis_id", id.String()).Msg("diagnosis deleted")
	return nil
}

// Statistics summarizes the user's history: total count, the five newest
// records, and the three most frequent symptoms.
func (s *Service) Statistics(ctx context.Context, userID uuid.UUID) (*Statistics, error) {
	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count diagnoses: %w", err)
	}
	recent, err := s.repo.ListByUser(ctx, userID, 0, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("list diagnoses: %w", err)
	}
	if recent == nil {
		recent = []*Record{}
	}
	symptoms, err := s.repo.SymptomsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list symptoms: %w", err)
	}
	return &Statistics{
		TotalDiagnoses:     total,
		RecentDiagnoses:    recent,
		MostCommonSymptoms: topSymptoms(symptoms, topSymptomCount),
	}, nil
}

// Count reports how many records exist across all users.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// topSymptoms ranks symptoms by frequency, breaking ties alphabetically.
// Symptom names are compared case-insensitively.
func topSymptoms(symptoms []string, n int) []string {
	counts := make(map[string]int)
	for _, s := range symptoms {
		name := strings.ToLower(strings.TrimSpace(s))
		if name == "" {
			continue
		}
		counts[name]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) > n {
		names = names[:n]
	}
	return names
}
