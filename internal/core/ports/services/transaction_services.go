package services

import (
	"context"

	"github.com/wrsoft/branchledger/internal/core/domain"
	"github.com/wrsoft/branchledger/internal/dto"
)

// TransactionReaderSvc defines the ledger read path.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction with its line items,
	// enforcing the caller's branch scope.
	GetTransactionByID(ctx context.Context, caller domain.Caller, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered page of transactions.
	ListTransactions(ctx context.Context, caller domain.Caller, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// GetSummary aggregates income/expense totals.
	GetSummary(ctx context.Context, caller domain.Caller, params dto.SummaryParams) (*dto.SummaryResponse, error)
}

// TransactionWriterSvc defines the posting and mutation paths.
type TransactionWriterSvc interface {
	// CreateIncome posts an income transaction: branch resolution, category
	// policy checks, discount/line-item computation, optional receivable
	// spawning and the atomic persistence of the whole posting.
	CreateIncome(ctx context.Context, caller domain.Caller, req dto.CreateIncomeRequest) (*domain.Transaction, error)

	// CreateExpense posts an expense transaction; an unpaid remainder spawns
	// a payable owed to the supplied contact.
	CreateExpense(ctx context.Context, caller domain.Caller, req dto.CreateExpenseRequest) (*domain.Transaction, error)

	// UpdateTransaction applies partial field updates. Transactions linked
	// to a payable/receivable are immutable and rejected with ErrConflict.
	UpdateTransaction(ctx context.Context, caller domain.Caller, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction soft-deletes a transaction under the same linkage rule.
	DeleteTransaction(ctx context.Context, caller domain.Caller, transactionID string) error
}

// TransactionSvcFacade combines the ledger read and write surfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
