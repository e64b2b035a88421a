package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is the persisted shape of branch-scoped stock.
type InventoryItem struct {
	ItemID       string          `json:"itemID"` // Primary Key (UUID)
	BranchID     string          `json:"branchID"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
	CostPerUnit  decimal.Decimal `json:"costPerUnit"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}

// InventoryMovement is the persisted shape of one append-only stock change.
type InventoryMovement struct {
	MovementID    string          `json:"movementID"` // Primary Key (UUID)
	ItemID        string          `json:"itemID"`
	BranchID      string          `json:"branchID"`
	TransactionID string          `json:"transactionID"`
	OperationType string          `json:"operationType"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	Reason        string          `json:"reason"`
	RecordedBy    string          `json:"recordedBy"`
	RecordedAt    time.Time       `json:"recordedAt"`
}
