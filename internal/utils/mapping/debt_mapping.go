package mapping

import (
	"github.com/wrsoft/branchledger/internal/core/domain"
	"github.com/wrsoft/branchledger/internal/models"
)

// ToModelAccountPayable converts a domain AccountPayable to its model shape
func ToModelAccountPayable(d domain.AccountPayable) models.AccountPayable {
	return models.AccountPayable{
		PayableID:           d.PayableID,
		BranchID:            d.BranchID,
		ContactID:           d.ContactID,
		LinkedTransactionID: d.LinkedTransactionID,
		Description:         d.Description,
		OriginalAmount:      d.OriginalAmount,
		RemainingAmount:     d.RemainingAmount,
		Status:              string(d.Status),
		DueDate:             d.DueDate,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccountPayable converts a model AccountPayable to its domain shape
func ToDomainAccountPayable(m models.AccountPayable) domain.AccountPayable {
	return domain.AccountPayable{
		PayableID:           m.PayableID,
		BranchID:            m.BranchID,
		ContactID:           m.ContactID,
		LinkedTransactionID: m.LinkedTransactionID,
		Description:         m.Description,
		OriginalAmount:      m.OriginalAmount,
		RemainingAmount:     m.RemainingAmount,
		Status:              domain.DebtStatus(m.Status),
		DueDate:             m.DueDate,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAccountReceivable converts a domain AccountReceivable to its model shape
func ToModelAccountReceivable(d domain.AccountReceivable) models.AccountReceivable {
	return models.AccountReceivable{
		ReceivableID:        d.ReceivableID,
		BranchID:            d.BranchID,
		ContactID:           d.ContactID,
		LinkedTransactionID: d.LinkedTransactionID,
		Description:         d.Description,
		OriginalAmount:      d.OriginalAmount,
		RemainingAmount:     d.RemainingAmount,
		Status:              string(d.Status),
		DueDate:             d.DueDate,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccountReceivable converts a model AccountReceivable to its domain shape
func ToDomainAccountReceivable(m models.AccountReceivable) domain.AccountReceivable {
	return domain.AccountReceivable{
		ReceivableID:        m.ReceivableID,
		BranchID:            m.BranchID,
		ContactID:           m.ContactID,
		LinkedTransactionID: m.LinkedTransactionID,
		Description:         m.Description,
		OriginalAmount:      m.OriginalAmount,
		RemainingAmount:     m.RemainingAmount,
		Status:              domain.DebtStatus(m.Status),
		DueDate:             m.DueDate,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountPayableSlice converts a slice of model payables
func ToDomainAccountPayableSlice(ms []models.AccountPayable) []domain.AccountPayable {
	out := make([]domain.AccountPayable, len(ms))
	for i, m := range ms {
		out[i] = ToDomainAccountPayable(m)
	}
	return out
}

// ToDomainAccountReceivableSlice converts a slice of model receivables
func ToDomainAccountReceivableSlice(ms []models.AccountReceivable) []domain.AccountReceivable {
	out := make([]domain.AccountReceivable, len(ms))
	for i, m := range ms {
		out[i] = ToDomainAccountReceivable(m)
	}
	return out
}
