package mapping

import (
	"github.com/wrsoft/branchledger/internal/core/domain"
	"github.com/wrsoft/branchledger/internal/models"
)

// ToModelInventoryItem converts a domain InventoryItem to its model shape
func ToModelInventoryItem(d domain.InventoryItem) models.InventoryItem {
	return models.InventoryItem{
		ItemID:       d.ItemID,
		BranchID:     d.BranchID,
		Name:         d.Name,
		Unit:         d.Unit,
		Quantity:     d.Quantity,
		CostPerUnit:  d.CostPerUnit,
		SellingPrice: d.SellingPrice,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInventoryItem converts a model InventoryItem to its domain shape
func ToDomainInventoryItem(m models.InventoryItem) domain.InventoryItem {
	return domain.InventoryItem{
		ItemID:       m.ItemID,
		BranchID:     m.BranchID,
		Name:         m.Name,
		Unit:         m.Unit,
		Quantity:     m.Quantity,
		CostPerUnit:  m.CostPerUnit,
		SellingPrice: m.SellingPrice,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInventoryMovement converts a domain InventoryMovement to its model shape
func ToModelInventoryMovement(d domain.InventoryMovement) models.InventoryMovement {
	return models.InventoryMovement{
		MovementID:    d.MovementID,
		ItemID:        d.ItemID,
		BranchID:      d.BranchID,
		TransactionID: d.TransactionID,
		OperationType: string(d.OperationType),
		Quantity:      d.Quantity,
		Unit:          d.Unit,
		Reason:        d.Reason,
		RecordedBy:    d.RecordedBy,
		RecordedAt:    d.RecordedAt,
	}
}

// ToDomainInventoryMovement converts a model InventoryMovement to its domain shape
func ToDomainInventoryMovement(m models.InventoryMovement) domain.InventoryMovement {
	return domain.InventoryMovement{
		MovementID:    m.MovementID,
		ItemID:        m.ItemID,
		BranchID:      m.BranchID,
		TransactionID: m.TransactionID,
		OperationType: domain.OperationType(m.OperationType),
		Quantity:      m.Quantity,
		Unit:          m.Unit,
		Reason:        m.Reason,
		RecordedBy:    m.RecordedBy,
		RecordedAt:    m.RecordedAt,
	}
}

// ToDomainInventoryItemSlice converts a slice of model items
func ToDomainInventoryItemSlice(ms []models.InventoryItem) []domain.InventoryItem {
	out := make([]domain.InventoryItem, len(ms))
	for i, m := range ms {
		out[i] = ToDomainInventoryItem(m)
	}
	return out
}

// ToDomainInventoryMovementSlice converts a slice of model movements
func ToDomainInventoryMovementSlice(ms []models.InventoryMovement) []domain.InventoryMovement {
	out := make([]domain.InventoryMovement, len(ms))
	for i, m := range ms {
		out[i] = ToDomainInventoryMovement(m)
	}
	return out
}
