package models

// Branch is the persisted shape of a physical location.
type Branch struct {
	BranchID string `json:"branchID"` // Primary Key (UUID)
	Name     string `json:"name"`
	Address  string `json:"address"`
	IsActive bool   `json:"isActive"`
	AuditFields
}

// Contact is the persisted shape of a counterparty.
type Contact struct {
	ContactID   string `json:"contactID"` // Primary Key (UUID)
	Name        string `json:"name"`
	ContactType string `json:"contactType"`
	Phone       string `json:"phone"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}

// Employee is the persisted shape of an employee directory entry.
type Employee struct {
	EmployeeID string `json:"employeeID"` // Primary Key (UUID)
	BranchID   string `json:"branchID"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	AuditFields
}

// Currency is the persisted shape of a display currency.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key, ISO 4217
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Precision    int    `json:"precision"`
	IsDefault    bool   `json:"isDefault"`
	AuditFields
}
