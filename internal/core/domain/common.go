package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}

// SoftDeleteFields marks entities that are soft-deleted rather than removed.
// A nil DeletedAt means the row is live.
type SoftDeleteFields struct {
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	DeletedBy *string    `json:"deletedBy,omitempty"` // UserID reference
}

// IsDeleted reports whether the entity has been soft-deleted.
func (s SoftDeleteFields) IsDeleted() bool {
	return s.DeletedAt != nil
}
