package mapping

import (
	"github.com/wrsoft/branchledger/internal/core/domain"
	"github.com/wrsoft/branchledger/internal/models"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToModelSoftDeleteFields converts a domain SoftDeleteFields to a model SoftDeleteFields
func ToModelSoftDeleteFields(d domain.SoftDeleteFields) models.SoftDeleteFields {
	return models.SoftDeleteFields{DeletedAt: d.DeletedAt, DeletedBy: d.DeletedBy}
}

// ToDomainSoftDeleteFields converts a model SoftDeleteFields to a domain SoftDeleteFields
func ToDomainSoftDeleteFields(m models.SoftDeleteFields) domain.SoftDeleteFields {
	return domain.SoftDeleteFields{DeletedAt: m.DeletedAt, DeletedBy: m.DeletedBy}
}
