package services

import (
	"context"

	"github.com/wrsoft/branchledger/internal/core/domain"
	"github.com/wrsoft/branchledger/internal/dto"
)

// AuthSvcFacade issues tokens and resolves callers from them.
type AuthSvcFacade interface {
	// Login verifies credentials and returns a signed JWT plus the user.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// ResolveCaller turns an authenticated user ID into the request caller.
	ResolveCaller(ctx context.Context, userID string) (domain.Caller, error)
}

// EmployeeSvcFacade is the employee directory consulted by the salary
// category policy.
type EmployeeSvcFacade interface {
	GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)
	ListEmployeesByBranch(ctx context.Context, caller domain.Caller, branchID *string) ([]domain.Employee, error)
}

// ContactSvcFacade serves counterparties.
type ContactSvcFacade interface {
	GetContactByID(ctx context.Context, contactID string) (*domain.Contact, error)
	ListContacts(ctx context.Context) ([]domain.Contact, error)
}

// CurrencySvcFacade serves currencies, including the cached default currency
// stamped on postings.
type CurrencySvcFacade interface {
	GetDefaultCurrency(ctx context.Context) (*domain.Currency, error)
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
