package domain

// Branch is one physical location of the operation. Ledger entries, stock and
// debts are all scoped to a branch.
type Branch struct {
	BranchID string `json:"branchID"` // Primary Key (UUID)
	Name     string `json:"name"`
	Address  string `json:"address"`
	IsActive bool   `json:"isActive"`
	AuditFields
}

// ContactType classifies a counterparty.
type ContactType string

const (
	ContactSupplier ContactType = "SUPPLIER"
	ContactCustomer ContactType = "CUSTOMER"
	ContactOther    ContactType = "OTHER"
)

// Contact is a counterparty for spawned payables and receivables.
type Contact struct {
	ContactID   string      `json:"contactID"` // Primary Key (UUID)
	Name        string      `json:"name"`
	ContactType ContactType `json:"contactType"`
	Phone       string      `json:"phone"`
	IsActive    bool        `json:"isActive"`
	AuditFields
}

// EmployeeStatus gates salary postings: only ACTIVE employees may be paid.
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "ACTIVE"
	EmployeeResigned EmployeeStatus = "RESIGNED"
)

// Employee is a directory entry referenced by salary-category transactions.
type Employee struct {
	EmployeeID string         `json:"employeeID"` // Primary Key (UUID)
	BranchID   string         `json:"branchID"`
	Name       string         `json:"name"`
	Status     EmployeeStatus `json:"status"`
	AuditFields
}

// Currency is a display currency; exactly one is flagged as the default and
// gets stamped on postings that do not specify one.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key, ISO 4217 (e.g. "IDR")
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Precision    int    `json:"precision"`
	IsDefault    bool   `json:"isDefault"`
	AuditFields
}
