package dto

import "github.com/wrsoft/branchledger/internal/core/domain"

// BranchResponse is the API shape of a branch.
type BranchResponse struct {
	BranchID string `json:"branchID"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	IsActive bool   `json:"isActive"`
}

// ContactResponse is the API shape of a counterparty.
type ContactResponse struct {
	ContactID   string `json:"contactID"`
	Name        string `json:"name"`
	ContactType string `json:"contactType"`
	Phone       string `json:"phone"`
	IsActive    bool   `json:"isActive"`
}

// EmployeeResponse is the API shape of an employee directory entry.
type EmployeeResponse struct {
	EmployeeID string `json:"employeeID"`
	BranchID   string `json:"branchID"`
	Name       string `json:"name"`
	Status     string `json:"status"`
}

// CurrencyResponse is the API shape of a currency.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Precision    int    `json:"precision"`
	IsDefault    bool   `json:"isDefault"`
}

// ToBranchResponse converts a domain branch.
func ToBranchResponse(b *domain.Branch) BranchResponse {
	return BranchResponse{BranchID: b.BranchID, Name: b.Name, Address: b.Address, IsActive: b.IsActive}
}

// ToBranchResponses converts a slice of domain branches.
func ToBranchResponses(bs []domain.Branch) []BranchResponse {
	out := make([]BranchResponse, len(bs))
	for i := range bs {
		out[i] = ToBranchResponse(&bs[i])
	}
	return out
}

// ToContactResponse converts a domain contact.
func ToContactResponse(c *domain.Contact) ContactResponse {
	return ContactResponse{ContactID: c.ContactID, Name: c.Name, ContactType: string(c.ContactType), Phone: c.Phone, IsActive: c.IsActive}
}

// ToContactResponses converts a slice of domain contacts.
func ToContactResponses(cs []domain.Contact) []ContactResponse {
	out := make([]ContactResponse, len(cs))
	for i := range cs {
		out[i] = ToContactResponse(&cs[i])
	}
	return out
}

// ToEmployeeResponse converts a domain employee.
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{EmployeeID: e.EmployeeID, BranchID: e.BranchID, Name: e.Name, Status: string(e.Status)}
}

// ToEmployeeResponses converts a slice of domain employees.
func ToEmployeeResponses(es []domain.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, len(es))
	for i := range es {
		out[i] = ToEmployeeResponse(&es[i])
	}
	return out
}

// ToCurrencyResponse converts a domain currency.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{CurrencyCode: c.CurrencyCode, Symbol: c.Symbol, Name: c.Name, Precision: c.Precision, IsDefault: c.IsDefault}
}

// ToCurrencyResponses converts a slice of domain currencies.
func ToCurrencyResponses(cs []domain.Currency) []CurrencyResponse {
	out := make([]CurrencyResponse, len(cs))
	for i := range cs {
		out[i] = ToCurrencyResponse(&cs[i])
	}
	return out
}
