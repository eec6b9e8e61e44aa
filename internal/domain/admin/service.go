package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mednex/mednex/internal/domain/identity"
)

// Sentinel errors carry the exact messages the API serves.
var (
	ErrDiseaseNotFound = errors.New("Disease not found")
	ErrSymptomNotFound = errors.New("Symptom not found")
)

// UserDirectory is the slice of the account service the admin surface uses.
type UserDirectory interface {
	List(ctx context.Context, skip, limit int) ([]*identity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*identity.User, error)
	Update(ctx context.Context, id uuid.UUID, update identity.UserUpdate) (*identity.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

// DiagnosisCounter reports how many diagnosis records exist.
type DiagnosisCounter interface {
	Count(ctx context.Context) (int, error)
}

// Service implements catalog management, user administration, and the
// analytics overview.
type Service struct {
	diseases  DiseaseRepository
	symptoms  SymptomRepository
	users     UserDirectory
	diagnoses DiagnosisCounter
	logger    zerolog.Logger
}

// NewService creates an admin service.
func NewService(diseases DiseaseRepository, symptoms SymptomRepository, users UserDirectory, diagnoses DiagnosisCounter, logger zerolog.Logger) *Service {
	return &Service{diseases: diseases, symptoms: symptoms, users: users, diagnoses: diagnoses, logger: logger}
}

// CreateDisease validates and stores a new disease.
func (s *Service) CreateDisease(ctx context.Context, d *Disease) (*Disease, error) {
	if strings.TrimSpace(d.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if strings.TrimSpace(d.Description) == "" {
		return nil, fmt.Errorf("description is required")
	}
	if strings.TrimSpace(d.Treatment) == "" {
		return nil, fmt.Errorf("treatment is required")
	}
	if !validSeverity(d.Severity) {
		return nil, fmt.Errorf("severity must be one of low, medium, high, critical")
	}
	if d.Symptoms == nil {
		d.Symptoms = []string{}
	}
	if err := s.diseases.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create disease: %w", err)
	}
	s.logger.Info().Str("name", d.Name).Msg("disease created")
	return d, nil
}

// GetDisease returns the disease for the given id.
func (s *Service) GetDisease(ctx context.Context, id uuid.UUID) (*Disease, error) {
	d, err := s.diseases.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup disease: %w", err)
	}
	if d == nil {
		return nil, ErrDiseaseNotFound
	}
	return d, nil
}

// ListDiseases returns diseases ordered by creation time.
func (s *Service) ListDiseases(ctx context.Context, skip, limit int) ([]*Disease, error) {
	return s.diseases.List(ctx, skip, limit)
}

// UpdateDisease applies a partial update to the given disease.
func (s *Service) UpdateDisease(ctx context.Context, id uuid.UUID, update DiseaseUpdate) (*Disease, error) {
	d, err := s.diseases.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup disease: %w", err)
	}
	if d == nil {
		return nil, ErrDiseaseNotFound
	}

	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return nil, fmt.Errorf("name is required")
		}
		d.Name = *update.Name
	}
	if update.Description != nil {
		d.Description = *update.Description
	}
	if update.Symptoms != nil {
		d.Symptoms = *update.Symptoms
	}
	if update.Treatment != nil {
		d.Treatment = *update.Treatment
	}
	if update.Severity != nil {
		if !validSeverity(*update.Severity) {
			return nil, fmt.Errorf("severity must be one of low, medium, high, critical")
		}
		d.Severity = *update.Severity
	}
	if update.Category != nil {
		d.Category = update.Category
	}

	if err := s.diseases.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("update disease: %w", err)
	}
	return d, nil
}

// DeleteDisease removes the disease.
func (s *Service) DeleteDisease(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.diseases.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete disease: %w", err)
	}
	if !deleted {
		return ErrDiseaseNotFound
	}
	return nil
}

// CreateSymptom validates and stores a new symptom.
func (s *Service) CreateSymptom(ctx context.Context, sym *Symptom) (*Symptom, error) {
	if strings.TrimSpace(sym.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if strings.TrimSpace(sym.Description) == "" {
		return nil, fmt.Errorf("description is required")
	}
	if err := s.symptoms.Create(ctx, sym); err != nil {
		return nil, fmt.Errorf("create symptom: %w", err)
	}
	s.logger.Info().Str("name", sym.Name).Msg("symptom created")
	return sym, nil
}

// GetSymptom returns the symptom for the given id.
func (s *Service) GetSymptom(ctx context.Context, id uuid.UUID) (*Symptom, error) {
	sym, err := s.symptoms.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup symptom: %w", err)
	}
	if sym == nil {
		return nil, ErrSymptomNotFound
	}
	return sym, nil
}

// ListSymptoms returns symptoms ordered by creation time.
func (s *Service) ListSymptoms(ctx context.Context, skip, limit int) ([]*Symptom, error) {
	return s.symptoms.List(ctx, skip, limit)
}

// UpdateSymptom applies a partial update to the given symptom.
func (s *Service) UpdateSymptom(ctx context.Context, id uuid.UUID, update SymptomUpdate) (*Symptom, error) {
	sym, err := s.symptoms.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup symptom: %w", err)
	}
	if sym == nil {
		return nil, ErrSymptomNotFound
	}

	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return nil, fmt.Errorf("name is required")
		}
		sym.Name = *update.Name
	}
	if update.Description != nil {
		sym.Description = *update.Description
	}
	if update.Category != nil {
		sym.Category = update.Category
	}

	if err := s.symptoms.Update(ctx, sym); err != nil {
		return nil, fmt.Errorf("update symptom: %w", err)
	}
	return sym, nil
}

// DeleteSymptom removes the symptom.
func (s *Service) DeleteSymptom(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.symptoms.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete symptom: %w", err)
	}
	if !deleted {
		return ErrSymptomNotFound
	}
	return nil
}

// ListUsers returns user accounts ordered by creation time.
func (s *Service) ListUsers(ctx context.Context, skip, limit int) ([]*identity.User, error) {
	return s.users.List(ctx, skip, limit)
}

// GetUser returns the user for the given id.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateUser applies a partial update to any user account.
func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, update identity.UserUpdate) (*identity.User, error) {
	return s.users.Update(ctx, id, update)
}

// DeleteUser removes any user account.
func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}

// Analytics returns totals across the main collections. Counting errors
// degrade to zeros rather than failing the endpoint.
func (s *Service) Analytics(ctx context.Context) Analytics {
	users, err := s.users.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to compute analytics")
		return Analytics{}
	}
	diseases, err := s.diseases.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to compute analytics")
		return Analytics{}
	}
	symptoms, err := s.symptoms.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to compute analytics")
		return Analytics{}
	}
	diagnoses, err := s.diagnoses.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to compute analytics")
		return Analytics{}
	}
	return Analytics{
		TotalUsers:     users,
		TotalDiseases:  diseases,
		TotalSymptoms:  symptoms,
		TotalDiagnoses: diagnoses,
	}
}
