package mapping

import (
	"github.com/wrsoft/branchledger/internal/core/domain"
	"github.com/wrsoft/branchledger/internal/models"
)

// ToDomainBranch converts a model Branch to its domain shape
func ToDomainBranch(m models.Branch) domain.Branch {
	return domain.Branch{
		BranchID:    m.BranchID,
		Name:        m.Name,
		Address:     m.Address,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBranchSlice converts a slice of model branches
func ToDomainBranchSlice(ms []models.Branch) []domain.Branch {
	out := make([]domain.Branch, len(ms))
	for i, m := range ms {
		out[i] = ToDomainBranch(m)
	}
	return out
}

// ToDomainContact converts a model Contact to its domain shape
func ToDomainContact(m models.Contact) domain.Contact {
	return domain.Contact{
		ContactID:   m.ContactID,
		Name:        m.Name,
		ContactType: domain.ContactType(m.ContactType),
		Phone:       m.Phone,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainContactSlice converts a slice of model contacts
func ToDomainContactSlice(ms []models.Contact) []domain.Contact {
	out := make([]domain.Contact, len(ms))
	for i, m := range ms {
		out[i] = ToDomainContact(m)
	}
	return out
}

// ToDomainEmployee converts a model Employee to its domain shape
func ToDomainEmployee(m models.Employee) domain.Employee {
	return domain.Employee{
		EmployeeID:  m.EmployeeID,
		BranchID:    m.BranchID,
		Name:        m.Name,
		Status:      domain.EmployeeStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEmployeeSlice converts a slice of model employees
func ToDomainEmployeeSlice(ms []models.Employee) []domain.Employee {
	out := make([]domain.Employee, len(ms))
	for i, m := range ms {
		out[i] = ToDomainEmployee(m)
	}
	return out
}

// ToDomainCurrency converts a model Currency to its domain shape
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyCode: m.CurrencyCode,
		Symbol:       m.Symbol,
		Name:         m.Name,
		Precision:    m.Precision,
		IsDefault:    m.IsDefault,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCurrencySlice converts a slice of model currencies
func ToDomainCurrencySlice(ms []models.Currency) []domain.Currency {
	out := make([]domain.Currency, len(ms))
	for i, m := range ms {
		out[i] = ToDomainCurrency(m)
	}
	return out
}
