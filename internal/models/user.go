package models

// User is the persisted shape of an operator account.
type User struct {
	UserID       string  `json:"userID"` // Primary Key (UUID)
	Name         string  `json:"name"`
	Username     string  `json:"username"`
	PasswordHash string  `json:"-"`
	Role         string  `json:"role"`
	BranchID     *string `json:"branchID,omitempty"`
	IsActive     bool    `json:"isActive"`
	AuditFields
}
