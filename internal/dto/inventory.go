package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wrsoft/branchledger/internal/core/domain"
)

// CreateInventoryItemRequest registers a new stock item for a branch.
type CreateInventoryItemRequest struct {
	Name         string           `json:"name" binding:"required"`
	Unit         string           `json:"unit" binding:"required"`
	BranchID     *string          `json:"branchID,omitempty"`
	SellingPrice *decimal.Decimal `json:"sellingPrice,omitempty"`
}

// ListInventoryParams filter the inventory read path.
type ListInventoryParams struct {
	BranchID  *string `form:"branchID"`
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// InventoryItemResponse is the API shape of a stock item.
type InventoryItemResponse struct {
	ItemID       string          `json:"itemID"`
	BranchID     string          `json:"branchID"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
	CostPerUnit  decimal.Decimal `json:"costPerUnit"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	IsActive     bool            `json:"isActive"`
}

// ListInventoryItemsResponse pages inventory items.
type ListInventoryItemsResponse struct {
	Items     []InventoryItemResponse `json:"items"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// InventoryMovementResponse is the API shape of a stock history row.
type InventoryMovementResponse struct {
	MovementID    string          `json:"movementID"`
	ItemID        string          `json:"itemID"`
	TransactionID string          `json:"transactionID"`
	OperationType string          `json:"operationType"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	Reason        string          `json:"reason"`
	RecordedBy    string          `json:"recordedBy"`
	RecordedAt    time.Time       `json:"recordedAt"`
}

// ListInventoryMovementsResponse pages movement history.
type ListInventoryMovementsResponse struct {
	Movements []InventoryMovementResponse `json:"movements"`
	NextToken *string                     `json:"nextToken,omitempty"`
}

// ToInventoryItemResponse converts a domain item to its API shape.
func ToInventoryItemResponse(i *domain.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ItemID:       i.ItemID,
		BranchID:     i.BranchID,
		Name:         i.Name,
		Unit:         i.Unit,
		Quantity:     i.Quantity,
		CostPerUnit:  i.CostPerUnit,
		SellingPrice: i.SellingPrice,
		IsActive:     i.IsActive,
	}
}

// ToInventoryItemResponses converts a slice of domain items.
func ToInventoryItemResponses(items []domain.InventoryItem) []InventoryItemResponse {
	out := make([]InventoryItemResponse, len(items))
	for i := range items {
		out[i] = ToInventoryItemResponse(&items[i])
	}
	return out
}

// ToInventoryMovementResponse converts a domain movement to its API shape.
func ToInventoryMovementResponse(m *domain.InventoryMovement) InventoryMovementResponse {
	return InventoryMovementResponse{
		MovementID:    m.MovementID,
		ItemID:        m.ItemID,
		TransactionID: m.TransactionID,
		OperationType: string(m.OperationType),
		Quantity:      m.Quantity,
		Unit:          m.Unit,
		Reason:        m.Reason,
		RecordedBy:    m.RecordedBy,
		RecordedAt:    m.RecordedAt,
	}
}

// ToInventoryMovementResponses converts a slice of domain movements.
func ToInventoryMovementResponses(moves []domain.InventoryMovement) []InventoryMovementResponse {
	out := make([]InventoryMovementResponse, len(moves))
	for i := range moves {
		out[i] = ToInventoryMovementResponse(&moves[i])
	}
	return out
}
