package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtStatus is derived from the remaining amount: ACTIVE when untouched,
// PARTIAL once some payments landed, PAID when remaining hits zero.
type DebtStatus string

const (
	DebtActive  DebtStatus = "ACTIVE"
	DebtPartial DebtStatus = "PARTIAL"
	DebtPaid    DebtStatus = "PAID"
)

// DebtStatusFor derives the status from original and remaining amounts,
// preserving the remaining = original - sum(payments) invariant semantics.
func DebtStatusFor(original, remaining decimal.Decimal) DebtStatus {
	switch {
	case remaining.LessThanOrEqual(decimal.Zero):
		return DebtPaid
	case remaining.LessThan(original):
		return DebtPartial
	default:
		return DebtActive
	}
}

// AccountPayable is money the business owes a contact, spawned exactly once
// from an under-paid expense. Later payment flows mutate it; the posting
// engine never touches it again.
type AccountPayable struct {
	PayableID           string          `json:"payableID"` // Primary Key (UUID)
	BranchID            string          `json:"branchID"`
	ContactID           string          `json:"contactID"`           // the counterparty owed
	LinkedTransactionID string          `json:"linkedTransactionID"` // the expense that spawned this payable
	Description         string          `json:"description"`
	OriginalAmount      decimal.Decimal `json:"originalAmount"`
	RemainingAmount     decimal.Decimal `json:"remainingAmount"` // 0 <= remaining <= original
	Status              DebtStatus      `json:"status"`
	DueDate             *time.Time      `json:"dueDate,omitempty"`
	AuditFields
}

// AccountReceivable is money a contact owes the business, spawned exactly
// once from an uncollected income when the caller opts in.
type AccountReceivable struct {
	ReceivableID        string          `json:"receivableID"` // Primary Key (UUID)
	BranchID            string          `json:"branchID"`
	ContactID           string          `json:"contactID"`
	LinkedTransactionID string          `json:"linkedTransactionID"` // the income that spawned this receivable
	Description         string          `json:"description"`
	OriginalAmount      decimal.Decimal `json:"originalAmount"`
	RemainingAmount     decimal.Decimal `json:"remainingAmount"`
	Status              DebtStatus      `json:"status"`
	DueDate             *time.Time      `json:"dueDate,omitempty"`
	AuditFields
}
