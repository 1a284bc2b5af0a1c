package identity

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/webshop/backend/internal/domain/identity"
	"github.com/webshop/backend/internal/domain/shared"
	"github.com/webshop/backend/internal/infrastructure/auth"
)

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords, so login responses never reveal which one failed.
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")

// AuthService handles registration, login, and profile access
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a new account and returns it with a fresh token
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	code, err := s.userRepo.GenerateCode(ctx)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(code, req.Name, req.Email, req.Password, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("user_code", user.Code))
	return s.authResponse(user)
}

// Login verifies credentials and returns the user with a fresh token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("User logged in", zap.String("user_code", user.Code))
	return s.authResponse(user)
}

// Profile returns the current user's account details
func (s *AuthService) Profile(ctx context.Context, userCode string) (*UserResponse, error) {
	user, err := s.userRepo.FindByCode(ctx, userCode)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// ChangePassword replaces the current user's password
func (s *AuthService) ChangePassword(ctx context.Context, userCode string, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByCode(ctx, userCode)
	if err != nil {
		return err
	}

	if !user.VerifyPassword(req.CurrentPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}
	if err := user.ChangePassword(req.NewPassword); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}

func (s *AuthService) authResponse(user *identity.User) (*AuthResponse, error) {
	token, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserCode: user.Code,
		Email:    user.Email,
		Role:     string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:      ToUserResponse(user),
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
	}, nil
}
