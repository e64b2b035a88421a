package repositories

import (
	"context"

	"github.com/wrsoft/branchledger/internal/core/domain"
)

// BranchRepositoryFacade defines operations for branches.
type BranchRepositoryFacade interface {
	FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)
}

// ContactRepositoryFacade defines operations for counterparties.
type ContactRepositoryFacade interface {
	FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error)
	ListContacts(ctx context.Context) ([]domain.Contact, error)
}

// EmployeeRepositoryFacade defines the employee directory lookups backing the
// salary-category policy check.
type EmployeeRepositoryFacade interface {
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)
	ListEmployeesByBranch(ctx context.Context, branchID string) ([]domain.Employee, error)
}

// CurrencyRepositoryFacade defines currency lookups, including the single
// default currency stamped onto postings.
type CurrencyRepositoryFacade interface {
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	FindDefaultCurrency(ctx context.Context) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
