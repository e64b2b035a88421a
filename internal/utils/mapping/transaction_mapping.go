package mapping

import (
	"github.com/wrsoft/branchledger/internal/core/domain"
	"github.com/wrsoft/branchledger/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:      d.TransactionID,
		TransactionType:    models.TransactionType(d.TransactionType),
		Category:           string(d.Category),
		Amount:             d.Amount,
		TotalAmount:        d.TotalAmount,
		PaidAmount:         d.PaidAmount,
		PaymentMethod:      stringPtr((*string)(d.PaymentMethod)),
		CurrencyCode:       d.CurrencyCode,
		TransactionDate:    d.TransactionDate,
		BranchID:           d.BranchID,
		Notes:              d.Notes,
		DiscountType:       stringPtr((*string)(d.DiscountType)),
		DiscountValue:      d.DiscountValue,
		DiscountAmount:     d.DiscountAmount,
		DiscountReason:     d.DiscountReason,
		EmployeeID:         d.EmployeeID,
		ContactID:          d.ContactID,
		LinkedPayableID:    d.LinkedPayableID,
		LinkedReceivableID: d.LinkedReceivableID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
		SoftDeleteFields:   ToModelSoftDeleteFields(d.SoftDeleteFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:      m.TransactionID,
		TransactionType:    domain.TransactionType(m.TransactionType),
		Category:           domain.Category(m.Category),
		Amount:             m.Amount,
		TotalAmount:        m.TotalAmount,
		PaidAmount:         m.PaidAmount,
		PaymentMethod:      paymentMethodPtr(m.PaymentMethod),
		CurrencyCode:       m.CurrencyCode,
		TransactionDate:    m.TransactionDate,
		BranchID:           m.BranchID,
		Notes:              m.Notes,
		DiscountType:       discountTypePtr(m.DiscountType),
		DiscountValue:      m.DiscountValue,
		DiscountAmount:     m.DiscountAmount,
		DiscountReason:     m.DiscountReason,
		EmployeeID:         m.EmployeeID,
		ContactID:          m.ContactID,
		LinkedPayableID:    m.LinkedPayableID,
		LinkedReceivableID: m.LinkedReceivableID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
		SoftDeleteFields:   ToDomainSoftDeleteFields(m.SoftDeleteFields),
	}
}

// ToModelTransactionLineItem converts a domain line item to its model shape
func ToModelTransactionLineItem(d domain.TransactionLineItem) models.TransactionLineItem {
	return models.TransactionLineItem{
		LineItemID:         d.LineItemID,
		TransactionID:      d.TransactionID,
		InventoryItemID:    d.InventoryItemID,
		InventorySubUnitID: d.InventorySubUnitID,
		Quantity:           d.Quantity,
		UnitPrice:          d.UnitPrice,
		OperationType:      string(d.OperationType),
		DiscountType:       stringPtr((*string)(d.DiscountType)),
		DiscountValue:      d.DiscountValue,
		Subtotal:           d.Subtotal,
		DiscountAmount:     d.DiscountAmount,
		Total:              d.Total,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransactionLineItem converts a model line item to its domain shape
func ToDomainTransactionLineItem(m models.TransactionLineItem) domain.TransactionLineItem {
	return domain.TransactionLineItem{
		LineItemID:         m.LineItemID,
		TransactionID:      m.TransactionID,
		InventoryItemID:    m.InventoryItemID,
		InventorySubUnitID: m.InventorySubUnitID,
		Quantity:           m.Quantity,
		UnitPrice:          m.UnitPrice,
		OperationType:      domain.OperationType(m.OperationType),
		DiscountType:       discountTypePtr(m.DiscountType),
		DiscountValue:      m.DiscountValue,
		Subtotal:           m.Subtotal,
		DiscountAmount:     m.DiscountAmount,
		Total:              m.Total,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionLineItemSlice converts a slice of model line items
func ToDomainTransactionLineItemSlice(ms []models.TransactionLineItem) []domain.TransactionLineItem {
	out := make([]domain.TransactionLineItem, len(ms))
	for i, m := range ms {
		out[i] = ToDomainTransactionLineItem(m)
	}
	return out
}

func stringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	s := *p
	return &s
}

func paymentMethodPtr(p *string) *domain.PaymentMethod {
	if p == nil {
		return nil
	}
	m := domain.PaymentMethod(*p)
	return &m
}

func discountTypePtr(p *string) *domain.DiscountType {
	if p == nil {
		return nil
	}
	t := domain.DiscountType(*p)
	return &t
}
