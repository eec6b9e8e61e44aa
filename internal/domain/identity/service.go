package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mednex/mednex/internal/platform/auth"
)

// Sentinel errors carry the exact messages the API serves.
var (
	ErrEmailTaken         = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Incorrect email or password")
	ErrAccountDeactivated = errors.New("Account is deactivated")
	ErrUserNotFound       = errors.New("User not found")
)

const minPasswordLength = 6

// Service implements account registration, login, and profile management.
type Service struct {
	repo   Repository
	tokens auth.TokenConfig
	logger zerolog.Logger
}

// NewService creates an identity service.
func NewService(repo Repository, tokens auth.TokenConfig, logger zerolog.Logger) *Service {
	return &Service{repo: repo, tokens: tokens, logger: logger}
}

// Register creates a new account. Role defaults to customer.
func (s *Service) Register(ctx context.Context, email, fullName, password, role string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, fmt.Errorf("full_name is required")
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if role == "" {
		role = RoleCustomer
	}
	if role != RoleAdmin && role != RoleCustomer {
		return nil, fmt.Errorf("role must be %q or %q", RoleAdmin, RoleCustomer)
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		Email:          email,
		FullName:       fullName,
		Role:           role,
		HashedPassword: string(hash),
		IsActive:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info().Str("email", email).Msg("user registered")
	return user, nil
}

// Login verifies credentials and issues a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (*Token, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	token, err := s.tokens.IssueToken(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info().Str("email", email).Msg("user logged in")
	return &Token{AccessToken: token, TokenType: "bearer", User: user}, nil
}

// GetByEmail returns the user for the given email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetByID returns the user for the given id.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// List returns users ordered by creation time.
func (s *Service) List(ctx context.Context, skip, limit int) ([]*User, error) {
	return s.repo.List(ctx, skip, limit)
}

// Update applies a partial update to the given user. A provided password
// is re-hashed before storage.
func (s *Service) Update(ctx context.Context, id uuid.UUID, update UserUpdate) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if update.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*update.Email))
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		if email != user.Email {
			existing, err := s.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("check existing user: %w", err)
			}
			if existing != nil {
				return nil, ErrEmailTaken
			}
			user.Email = email
		}
	}
	if update.FullName != nil {
		if strings.TrimSpace(*update.FullName) == "" {
			return nil, fmt.Errorf("full_name is required")
		}
		user.FullName = *update.FullName
	}
	if update.Password != nil {
		if len(*update.Password) < minPasswordLength {
			return nil, fmt.Errorf("password must be at least %d characters", minPasswordLength)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.HashedPassword = string(hash)
	}
	if update.Role != nil {
		if *update.Role != RoleAdmin && *update.Role != RoleCustomer {
			return nil, fmt.Errorf("role must be %q or %q", RoleAdmin, RoleCustomer)
		}
		user.Role = *update.Role
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Delete removes the account.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !deleted {
		return ErrUserNotFound
	}
	return nil
}

// Count reports how many accounts exist.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return fmt.Errorf("email is not valid")
	}
	return nil
}
