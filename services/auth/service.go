// Package auth implements signup, login and token refresh on top of the
// user repository and the token manager.
package auth

import (
	"context"
	"errors"
	"time"

	appauth "github.com/priceoptimizer/backend/auth"
	"github.com/priceoptimizer/backend/internal/access"
	"github.com/priceoptimizer/backend/models"
	"github.com/priceoptimizer/backend/repositories"
	"github.com/priceoptimizer/backend/services"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SignupInput is a registration payload. Only buyer and supplier
// accounts can self-register; admins are seeded at bootstrap.
type SignupInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=buyer supplier"`
}

// Session is the outcome of a successful login or refresh: both tokens
// plus the identity figures the frontend displays.
type Session struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// Service handles authentication operations
type Service struct {
	users  repositories.UserRepository
	tokens *appauth.TokenManager
	access *access.Evaluator
	logger *zap.Logger
}

// NewService creates a new auth Service
func NewService(
	users repositories.UserRepository,
	tokens *appauth.TokenManager,
	evaluator *access.Evaluator,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		access: evaluator,
		logger: logger,
	}
}

// RefreshTTL returns the refresh token lifetime, for cookie expiry.
func (s *Service) RefreshTTL() time.Duration {
	return s.tokens.RefreshTTL()
}

// Signup registers a new buyer or supplier account.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	role := models.Role(in.Role)
	if role != models.RoleBuyer && role != models.RoleSupplier {
		return nil, services.ErrInvalidRole
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, services.ErrDuplicateEmail
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, services.WrapInternal("failed to check existing email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, services.WrapInternal("failed to hash password", err)
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		IsVerified:   true,
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, services.WrapInternal("failed to create user", err)
	}

	s.logger.Info("user registered",
		zap.Int64("id", user.ID),
		zap.String("role", string(user.Role)))

	return user, nil
}

// Login verifies the credentials and issues a fresh token pair. The
// access token embeds the role's permission set at issuance time.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrInvalidCredentials
		}
		return nil, services.WrapInternal("failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, services.ErrInvalidCredentials
	}

	return s.issueSession(user)
}

// Refresh exchanges a valid refresh token for a fresh token pair. The
// permission set is re-derived from the role grants so role changes take
// effect at the next refresh.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	claims, err := s.tokens.Validate(refreshToken)
	if err != nil {
		return nil, services.ErrInvalidToken
	}
	if claims.TokenType != appauth.TokenTypeRefresh {
		return nil, services.ErrInvalidToken
	}

	user, err := s.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrInvalidToken
		}
		return nil, services.WrapInternal("failed to look up user", err)
	}

	return s.issueSession(user)
}

func (s *Service) issueSession(user *models.User) (*Session, error) {
	permissions := s.access.PermissionsFor(user.Role)

	accessToken, err := s.tokens.IssueAccess(user, permissions)
	if err != nil {
		return nil, services.WrapInternal("failed to issue access token", err)
	}

	refreshToken, err := s.tokens.IssueRefresh(user)
	if err != nil {
		return nil, services.WrapInternal("failed to issue refresh token", err)
	}

	s.logger.Debug("session issued",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)))

	return &Session{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.tokens.AccessTTL(),
	}, nil
}
