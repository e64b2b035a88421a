package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry as money in or money out.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// Transaction is the persisted shape of a ledger entry.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (UUID)
	TransactionType TransactionType `json:"transactionType"`
	Category        string          `json:"category"`
	Amount          decimal.Decimal `json:"amount"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	PaymentMethod   *string         `json:"paymentMethod,omitempty"`
	CurrencyCode    string          `json:"currencyCode"`
	TransactionDate time.Time       `json:"transactionDate"`
	BranchID        string          `json:"branchID"`
	Notes           string          `json:"notes"`

	DiscountType   *string          `json:"discountType,omitempty"`
	DiscountValue  *decimal.Decimal `json:"discountValue,omitempty"`
	DiscountAmount decimal.Decimal  `json:"discountAmount"`
	DiscountReason string           `json:"discountReason"`

	EmployeeID         *string `json:"employeeID,omitempty"`
	ContactID          *string `json:"contactID,omitempty"`
	LinkedPayableID    *string `json:"linkedPayableID,omitempty"`
	LinkedReceivableID *string `json:"linkedReceivableID,omitempty"`

	AuditFields
	SoftDeleteFields
}

// TransactionLineItem is the persisted shape of one inventory-affecting line.
type TransactionLineItem struct {
	LineItemID         string          `json:"lineItemID"` // Primary Key (UUID)
	TransactionID      string          `json:"transactionID"`
	InventoryItemID    string          `json:"inventoryItemID"`
	InventorySubUnitID *string         `json:"inventorySubUnitID,omitempty"`
	Quantity           decimal.Decimal `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unitPrice"`
	OperationType      string          `json:"operationType"`

	DiscountType  *string          `json:"discountType,omitempty"`
	DiscountValue *decimal.Decimal `json:"discountValue,omitempty"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Total          decimal.Decimal `json:"total"`

	AuditFields
}
