package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountPayable is the persisted shape of money the business owes a contact.
type AccountPayable struct {
	PayableID           string          `json:"payableID"` // Primary Key (UUID)
	BranchID            string          `json:"branchID"`
	ContactID           string          `json:"contactID"`
	LinkedTransactionID string          `json:"linkedTransactionID"`
	Description         string          `json:"description"`
	OriginalAmount      decimal.Decimal `json:"originalAmount"`
	RemainingAmount     decimal.Decimal `json:"remainingAmount"`
	Status              string          `json:"status"`
	DueDate             *time.Time      `json:"dueDate,omitempty"`
	AuditFields
}

// AccountReceivable is the persisted shape of money a contact owes the business.
type AccountReceivable struct {
	ReceivableID        string          `json:"receivableID"` // Primary Key (UUID)
	BranchID            string          `json:"branchID"`
	ContactID           string          `json:"contactID"`
	LinkedTransactionID string          `json:"linkedTransactionID"`
	Description         string          `json:"description"`
	OriginalAmount      decimal.Decimal `json:"originalAmount"`
	RemainingAmount     decimal.Decimal `json:"remainingAmount"`
	Status              string          `json:"status"`
	DueDate             *time.Time      `json:"dueDate,omitempty"`
	AuditFields
}
