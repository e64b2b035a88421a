package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is branch-scoped stock with a weighted-average unit cost.
// Quantity never goes negative; every mutation happens through the valuation
// engine inside the posting's atomic unit.
type InventoryItem struct {
	ItemID       string          `json:"itemID"`   // Primary Key (UUID)
	BranchID     string          `json:"branchID"` // FK -> branches.branch_id
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`     // e.g. "kg", "pcs"
	Quantity     decimal.Decimal `json:"quantity"` // >= 0 invariant
	CostPerUnit  decimal.Decimal `json:"costPerUnit"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}

// ApplyPurchase blends qty units bought at unitPrice into the item's
// weighted-average cost and increments quantity. When sellingPrice is
// non-nil the item's selling price is updated as well.
//
// Conservation invariant: newCost * newQuantity == oldQty*oldCost + qty*unitPrice.
func (i *InventoryItem) ApplyPurchase(qty, unitPrice decimal.Decimal, sellingPrice *decimal.Decimal) {
	newQuantity := i.Quantity.Add(qty)
	if newQuantity.IsPositive() {
		existingValue := i.Quantity.Mul(i.CostPerUnit)
		incomingValue := qty.Mul(unitPrice)
		i.CostPerUnit = existingValue.Add(incomingValue).Div(newQuantity)
	} else {
		i.CostPerUnit = unitPrice
	}
	i.Quantity = newQuantity
	if sellingPrice != nil {
		i.SellingPrice = *sellingPrice
	}
}

// HasSufficientStock reports whether qty units can be consumed.
func (i *InventoryItem) HasSufficientStock(qty decimal.Decimal) bool {
	return i.Quantity.GreaterThanOrEqual(qty)
}

// ApplyConsumption decrements quantity by qty. The caller must have verified
// sufficiency; the persistence layer re-enforces it with a conditional update.
func (i *InventoryItem) ApplyConsumption(qty decimal.Decimal) {
	i.Quantity = i.Quantity.Sub(qty)
}

// InventoryMovement is an append-only history row recording a stock change
// caused by a transaction. Movements are never updated or deleted.
type InventoryMovement struct {
	MovementID    string          `json:"movementID"` // Primary Key (UUID)
	ItemID        string          `json:"itemID"`     // FK -> inventory_items.item_id
	BranchID      string          `json:"branchID"`
	TransactionID string          `json:"transactionID"` // the posting that caused the change
	OperationType OperationType   `json:"operationType"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	Reason        string          `json:"reason"`
	RecordedBy    string          `json:"recordedBy"` // UserID reference
	RecordedAt    time.Time       `json:"recordedAt"`
}

// InventoryMutation is an instruction for the persistence layer: apply one
// purchase or consumption to an item inside the posting's database
// transaction, using an atomic conditional update so concurrent postings can
// never drive quantity negative.
type InventoryMutation struct {
	ItemID          string
	BranchID        string
	OperationType   OperationType
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal  // purchase only
	NewSellingPrice *decimal.Decimal // purchase only, optional
}
