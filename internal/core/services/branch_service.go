package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wrsoft/branchledger/internal/apperrors"
	"github.com/wrsoft/branchledger/internal/core/domain"
	portsrepo "github.com/wrsoft/branchledger/internal/core/ports/repositories"
	portssvc "github.com/wrsoft/branchledger/internal/core/ports/services"
	"github.com/wrsoft/branchledger/internal/middleware"
)

// branchService resolves the effective branch for postings and reads.
type branchService struct {
	branchRepo portsrepo.BranchRepositoryFacade
}

// NewBranchService creates a new BranchService.
func NewBranchService(branchRepo portsrepo.BranchRepositoryFacade) portssvc.BranchSvcFacade {
	return &branchService{branchRepo: branchRepo}
}

var _ portssvc.BranchSvcFacade = (*branchService)(nil)

// ResolveBranchID determines the branch a write lands in.
//
// Branch-scoped callers (accountants) always resolve to their assigned
// branch; naming a different branch explicitly is a privilege-escalation
// attempt and is rejected. Unrestricted callers (admins) have no implicit
// branch and must name an existing one.
func (s *branchService) ResolveBranchID(ctx context.Context, caller domain.Caller, requestedBranchID *string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if caller.IsBranchScoped() {
		if caller.BranchID == nil || *caller.BranchID == "" {
			return "", fmt.Errorf("%w: branch-scoped user %s has no assigned branch", apperrors.ErrValidation, caller.UserID)
		}
		if requestedBranchID != nil && *requestedBranchID != "" && *requestedBranchID != *caller.BranchID {
			logger.Warn("Branch-scoped caller addressed a foreign branch",
				slog.String("user_id", caller.UserID),
				slog.String("own_branch", *caller.BranchID),
				slog.String("requested_branch", *requestedBranchID))
			return "", fmt.Errorf("%w: cannot post to another branch", apperrors.ErrForbidden)
		}
		return *caller.BranchID, nil
	}

	// Unrestricted role: an explicit branch is mandatory for writes.
	branchID := requestedBranchID
	if branchID == nil || *branchID == "" {
		branchID = caller.BranchID
	}
	if branchID == nil || *branchID == "" {
		return "", fmt.Errorf("%w: branchID is required", apperrors.ErrValidation)
	}

	branch, err := s.branchRepo.FindBranchByID(ctx, *branchID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve branch %s: %w", *branchID, err)
	}
	if !branch.IsActive {
		return "", fmt.Errorf("%w: branch %s is inactive", apperrors.ErrValidation, *branchID)
	}
	return branch.BranchID, nil
}

// EffectiveBranchFilter applies the same resolution to the read paths. A nil
// result means no branch filter, which only unrestricted callers get.
func (s *branchService) EffectiveBranchFilter(ctx context.Context, caller domain.Caller, requestedBranchID *string) (*string, error) {
	if caller.IsBranchScoped() {
		if caller.BranchID == nil || *caller.BranchID == "" {
			return nil, fmt.Errorf("%w: branch-scoped user %s has no assigned branch", apperrors.ErrValidation, caller.UserID)
		}
		if requestedBranchID != nil && *requestedBranchID != "" && *requestedBranchID != *caller.BranchID {
			return nil, fmt.Errorf("%w: cannot read another branch", apperrors.ErrForbidden)
		}
		return caller.BranchID, nil
	}

	if requestedBranchID == nil || *requestedBranchID == "" {
		return nil, nil
	}
	return requestedBranchID, nil
}

// GetBranchByID retrieves a single branch.
func (s *branchService) GetBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	return s.branchRepo.FindBranchByID(ctx, branchID)
}

// ListBranches retrieves all branches.
func (s *branchService) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	return s.branchRepo.ListBranches(ctx)
}
