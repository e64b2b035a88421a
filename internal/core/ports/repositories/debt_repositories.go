package repositories

import (
	"context"

	"github.com/wrsoft/branchledger/internal/core/domain"
)

// DebtFilter scopes the payable/receivable read path.
type DebtFilter struct {
	BranchID  *string
	Status    *domain.DebtStatus
	Limit     int
	NextToken *string
}

// PayableReader defines read operations for accounts payable.
type PayableReader interface {
	FindPayableByID(ctx context.Context, payableID string) (*domain.AccountPayable, error)
	ListPayables(ctx context.Context, filter DebtFilter) ([]domain.AccountPayable, *string, error)
}

// ReceivableReader defines read operations for accounts receivable.
type ReceivableReader interface {
	FindReceivableByID(ctx context.Context, receivableID string) (*domain.AccountReceivable, error)
	ListReceivables(ctx context.Context, filter DebtFilter) ([]domain.AccountReceivable, *string, error)
}

// DebtRepositoryFacade combines both debt read surfaces. Debt rows are only
// ever created inside SavePosting; payment/collection flows own them after.
type DebtRepositoryFacade interface {
	PayableReader
	ReceivableReader
}
