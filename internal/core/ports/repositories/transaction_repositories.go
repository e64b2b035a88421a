package repositories

import (
	"context"
	"time"

	"github.com/wrsoft/branchledger/internal/core/domain"
)

// TransactionFilter scopes the transaction list read path. A nil BranchID
// means no branch filter (unrestricted roles only).
type TransactionFilter struct {
	BranchID        *string
	TransactionType *domain.TransactionType
	Category        *domain.Category
	DateFrom        *time.Time
	DateTo          *time.Time
	Limit           int
	NextToken       *string
}

// SummaryFilter scopes the aggregate read path.
type SummaryFilter struct {
	BranchID *string
	DateFrom *time.Time
	DateTo   *time.Time
}

// TransactionReader defines read operations for ledger entries.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction with its line items.
	// Soft-deleted transactions are treated as not found.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered, token-paginated page of
	// transactions (line items not populated).
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, *string, error)

	// SummarizeTransactions aggregates income/expense totals for the filter.
	SummarizeTransactions(ctx context.Context, filter SummaryFilter) (domain.TransactionSummary, error)
}

// TransactionWriter defines write operations for ledger entries.
type TransactionWriter interface {
	// SavePosting persists the transaction, its line items, the inventory
	// mutations and movements, and any spawned payable/receivable within a
	// single database transaction. Inventory decrements are applied as
	// conditional updates so a concurrent consumption can never drive
	// quantity negative; a failed condition aborts the whole posting.
	SavePosting(ctx context.Context, posting domain.Posting) error

	// UpdateTransaction persists partial-field changes to a transaction row.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// SoftDeleteTransaction marks the transaction deleted without removing it.
	SoftDeleteTransaction(ctx context.Context, transactionID string, deletedBy string, deletedAt time.Time) error
}

// TransactionRepositoryFacade combines the ledger read and write surfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends the facade with transaction control.
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
