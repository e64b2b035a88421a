package domain

import "time"

// AuditAction is the kind of change an audit log records.
type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
)

// AuditLog is a fire-and-forget record of a mutation, written after the
// posting's atomic unit has committed. Losing one never fails the posting.
type AuditLog struct {
	AuditLogID string      `json:"auditLogID"` // Primary Key (UUID)
	UserID     string      `json:"userID"`
	Action     AuditAction `json:"action"`
	EntityType string      `json:"entityType"` // e.g. "transaction"
	EntityID   string      `json:"entityID"`
	Snapshot   []byte      `json:"snapshot"` // JSON snapshot of the entity after the change
	RecordedAt time.Time   `json:"recordedAt"`
}
