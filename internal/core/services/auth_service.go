package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wrsoft/branchledger/internal/apperrors"
	"github.com/wrsoft/branchledger/internal/core/domain"
	portsrepo "github.com/wrsoft/branchledger/internal/core/ports/repositories"
	portssvc "github.com/wrsoft/branchledger/internal/core/ports/services"
	"github.com/wrsoft/branchledger/internal/dto"
	"github.com/wrsoft/branchledger/internal/middleware"
	"github.com/wrsoft/branchledger/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type authService struct {
	userRepo  portsrepo.UserRepositoryFacade
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		jwtIssuer: jwtIssuer,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies credentials and issues a signed token.
// Implements portssvc.AuthSvcFacade.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same failure for unknown user and wrong password.
			return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Failed login attempt", slog.String("username", req.Username))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrInvalidCredentials)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: user account is disabled", apperrors.ErrForbidden)
	}

	token, err := utils.GenerateJWT(user.UserID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)}, nil
}

// ResolveCaller loads the user behind a validated token subject and derives
// the request caller. A deactivated user is rejected even with a valid token.
// Implements portssvc.AuthSvcFacade.
func (s *authService) ResolveCaller(ctx context.Context, userID string) (domain.Caller, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.Caller{}, fmt.Errorf("%w: unknown user", apperrors.ErrForbidden)
		}
		return domain.Caller{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		return domain.Caller{}, fmt.Errorf("%w: user account is disabled", apperrors.ErrForbidden)
	}
	return domain.CallerFromUser(user), nil
}
