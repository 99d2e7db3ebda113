package user

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jordanlanch/campaignforge/pkg/auth"
	"github.com/jordanlanch/campaignforge/pkg/domain"
	"github.com/jordanlanch/campaignforge/pkg/logger"
)

// Service handles account registration, login and profile updates.
type Service struct {
	users     Repository
	jwtSecret string
	jwtHours  int
	log       logger.Logger
}

// NewService creates a user service
func NewService(users Repository, jwtSecret string, jwtHours int, log logger.Logger) *Service {
	if log == nil {
		log = logger.Default()
	}
	return &Service{users: users, jwtSecret: jwtSecret, jwtHours: jwtHours, log: log}
}

// AuthResult bundles a user with their issued token.
type AuthResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Register creates an account and returns a signed token.
func (s *Service) Register(ctx context.Context, email, name, password string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("a valid email is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("name is required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	u := &User{Email: email, Name: strings.TrimSpace(name), PasswordHash: hash}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	token, err := auth.GenerateJWT(u.ID, u.Email, s.jwtSecret, s.jwtHours)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	s.log.Info("user registered", "user_id", u.ID)
	return &AuthResult{User: u, Token: token}, nil
}

// Login verifies credentials and returns a signed token. Wrong email and
// wrong password return the same error.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnauthorizedError()
		}
		return nil, err
	}

	if !auth.CheckPassword(password, u.PasswordHash) {
		return nil, domain.NewUnauthorizedError()
	}

	token, err := auth.GenerateJWT(u.ID, u.Email, s.jwtSecret, s.jwtHours)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	return &AuthResult{User: u, Token: token}, nil
}

// Get returns an account by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

// SetBrandVoice stores the account-level brand voice description.
func (s *Service) SetBrandVoice(ctx context.Context, id uuid.UUID, brandVoice string) (*User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.BrandVoice = strings.TrimSpace(brandVoice)
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
