package domain

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

// PaymentMethod is how the money moved. Required for income, optional for expenses.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "CASH"
	PaymentMaster PaymentMethod = "MASTER"
)

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	return m == PaymentCash || m == PaymentMaster
}

// DiscountType selects between a percentage discount and a fixed amount.
type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountAmount     DiscountType = "AMOUNT"
)

// ValidDiscountType reports whether t is a known discount type.
func ValidDiscountType(t DiscountType) bool {
	return t == DiscountPercentage || t == DiscountAmount
}

// OperationType is the inventory effect of a transaction line item.
type OperationType string

const (
	OperationPurchase    OperationType = "PURCHASE"
	OperationConsumption OperationType = "CONSUMPTION"
)

// ValidOperationType reports whether o is a known inventory operation.
func ValidOperationType(o OperationType) bool {
	return o == OperationPurchase || o == OperationConsumption
}

// Transaction is a single ledger entry for a branch, optionally decomposed
// into inventory line items and optionally linked to a spawned debt record.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (UUID)
	TransactionType TransactionType `json:"transactionType"`
	Category        Category        `json:"category"`
	Amount          decimal.Decimal `json:"amount"`      // posted/paid amount
	TotalAmount     decimal.Decimal `json:"totalAmount"` // nominal amount before partial-payment split
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	PaymentMethod   *PaymentMethod  `json:"paymentMethod,omitempty"`
	CurrencyCode    string          `json:"currencyCode"`
	TransactionDate time.Time       `json:"transactionDate"` // must not be in the future
	BranchID        string          `json:"branchID"`        // FK -> branches.branch_id
	Notes           string          `json:"notes"`

	DiscountType   *DiscountType    `json:"discountType,omitempty"`
	DiscountValue  *decimal.Decimal `json:"discountValue,omitempty"`
	DiscountAmount decimal.Decimal  `json:"discountAmount"`
	DiscountReason string           `json:"discountReason,omitempty"`

	EmployeeID         *string `json:"employeeID,omitempty"`         // required for salary categories
	ContactID          *string `json:"contactID,omitempty"`          // counterparty for spawned debts
	LinkedPayableID    *string `json:"linkedPayableID,omitempty"`    // set when an unpaid remainder spawned a payable
	LinkedReceivableID *string `json:"linkedReceivableID,omitempty"` // set when uncollected income spawned a receivable

	LineItems []TransactionLineItem `json:"lineItems,omitempty"`

	AuditFields
	SoftDeleteFields
}

// IsLinkedToDebt reports whether this transaction spawned a payable or
// receivable. Linked transactions are immutable.
func (t *Transaction) IsLinkedToDebt() bool {
	return t.LinkedPayableID != nil || t.LinkedReceivableID != nil
}

// TransactionLineItem is one inventory-affecting line within a transaction.
// Line items are created atomically with their transaction and never updated
// independently.
type TransactionLineItem struct {
	LineItemID         string          `json:"lineItemID"`    // Primary Key (UUID)
	TransactionID      string          `json:"transactionID"` // FK -> transactions.transaction_id
	InventoryItemID    string          `json:"inventoryItemID"`
	InventorySubUnitID *string         `json:"inventorySubUnitID,omitempty"`
	Quantity           decimal.Decimal `json:"quantity"`  // > 0
	UnitPrice          decimal.Decimal `json:"unitPrice"` // >= 0
	OperationType      OperationType   `json:"operationType"`

	DiscountType  *DiscountType    `json:"discountType,omitempty"`
	DiscountValue *decimal.Decimal `json:"discountValue,omitempty"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Total          decimal.Decimal `json:"total"`

	AuditFields
}

// TransactionSummary aggregates posted amounts for the read path.
type TransactionSummary struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	Net              decimal.Decimal `json:"net"`
	TransactionCount int64           `json:"transactionCount"`
}
