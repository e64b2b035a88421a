package services

import (
	"context"

	"github.com/wrsoft/branchledger/internal/core/domain"
)

// BranchSvcFacade resolves the effective branch of a request and serves the
// branch reference read path.
type BranchSvcFacade interface {
	// ResolveBranchID determines the branch a write lands in. Branch-scoped
	// callers always resolve to their own branch; explicitly addressing a
	// foreign branch is ErrForbidden. Unrestricted callers must name an
	// existing branch.
	ResolveBranchID(ctx context.Context, caller domain.Caller, requestedBranchID *string) (string, error)

	// EffectiveBranchFilter applies the same resolution to read paths,
	// defaulting to no filter for unrestricted callers.
	EffectiveBranchFilter(ctx context.Context, caller domain.Caller, requestedBranchID *string) (*string, error)

	// GetBranchByID retrieves a single branch.
	GetBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)

	// ListBranches retrieves all branches.
	ListBranches(ctx context.Context) ([]domain.Branch, error)
}
