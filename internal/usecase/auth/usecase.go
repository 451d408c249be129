package auth

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domain "recruit-auth-service/internal/domain/user"
	pkgerrors "recruit-auth-service/pkg/errors"
	"recruit-auth-service/pkg/security"
	"recruit-auth-service/pkg/token"

	"github.com/go-playground/validator/v10"
)

// Repository defines the interface for credential store access.
// It abstracts the data layer, allowing different implementations
// (e.g., PostgreSQL, cached) to be used interchangeably.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)   // Create a new user; conflicts on duplicate email
	GetByID(ctx context.Context, id string) (*domain.User, error)       // Retrieve user by ID
	GetByEmail(ctx context.Context, email string) (*domain.User, error) // Retrieve user by email; nil when absent
}

// Service implements the authentication business logic. It provides a clean
// separation between the transport layer and the credential store, password
// hasher, and token service.
type Service struct {
	repo     Repository          // Credential store
	tokens   *token.Manager      // Session token issue/verify
	log      *zap.Logger         // Logger for structured logging
	validate *validator.Validate // Validator for request validation
}

// New creates a new Service with the provided repository, token manager, and logger.
func New(r Repository, tm *token.Manager, log *zap.Logger) *Service {
	return &Service{repo: r, tokens: tm, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a structured
// validation error with one issue per failing field.
func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return pkgerrors.NewValidationError("Invalid input")
	}

	issues := make([]pkgerrors.Issue, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		var message string
		switch e.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "email":
			message = fmt.Sprintf("%s must be a valid email", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", field, e.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, e.Param())
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}
		issues = append(issues, pkgerrors.Issue{Field: field, Message: message})
	}
	return pkgerrors.NewValidationError("Invalid input", issues...)
}

// Register creates a new account after validating the request and checking
// email uniqueness. The pre-check gives friendly conflicts; the storage-level
// unique index still decides simultaneous registrations.
func (s *Service) Register(ctx context.Context, in RegisterRequest) (*RegisterResponse, error) {
	s.log.Info("registering user", zap.String("email", in.Email))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("register validation failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	existing, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		s.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, pkgerrors.NewInternalError("Server error", err)
	}
	if existing != nil {
		s.log.Warn("email already in use", zap.String("email", in.Email))
		return nil, pkgerrors.ErrEmailInUse
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		s.log.Error("failed to hash password", zap.Error(err))
		return nil, pkgerrors.NewInternalError("Server error", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
	})
	if err != nil {
		s.log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	return &RegisterResponse{
		ID:        created.ID,
		Email:     created.Email,
		Name:      created.Name,
		CreatedAt: created.CreatedAt,
	}, nil
}

// Login verifies credentials and issues a session token. Failures for an
// unknown email and a wrong password return the same error; the unknown-email
// path still performs a hash comparison so the two cost the same.
func (s *Service) Login(ctx context.Context, in LoginRequest) (*LoginResponse, error) {
	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("login validation failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	u, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		s.log.Error("failed to look up user for login", zap.Error(err))
		return nil, pkgerrors.NewInternalError("Server error", err)
	}
	if u == nil {
		security.BurnPassword(in.Password)
		s.log.Info("login failed", zap.String("email", in.Email))
		return nil, pkgerrors.ErrInvalidCredentials
	}

	if !security.VerifyPassword(u.PasswordHash, in.Password) {
		s.log.Info("login failed", zap.String("email", in.Email))
		return nil, pkgerrors.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		s.log.Error("failed to issue token", zap.String("user_id", u.ID), zap.Error(err))
		return nil, pkgerrors.NewInternalError("Server error", err)
	}

	s.log.Info("login succeeded", zap.String("user_id", u.ID))

	return &LoginResponse{
		Token: signed,
		User: SessionUser{
			ID:    u.ID,
			Email: u.Email,
			Name:  u.Name,
		},
	}, nil
}

// Authenticate verifies a session token and loads the profile it refers to.
// Any token problem maps to the generic unauthorized error; a valid token for
// a deleted account maps to not found.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (*ProfileResponse, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		s.log.Debug("token verification failed", zap.Error(err))
		return nil, pkgerrors.ErrUnauthorized
	}

	u, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return &ProfileResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Bio:   u.Bio,
	}, nil
}
