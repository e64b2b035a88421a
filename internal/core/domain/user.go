package domain

// UserRole determines the branch scope of a caller.
type UserRole string

const (
	// RoleAdmin is unrestricted: may address any branch but must name one for writes.
	RoleAdmin UserRole = "ADMIN"
	// RoleAccountant is branch-scoped: always acts within its assigned branch.
	RoleAccountant UserRole = "ACCOUNTANT"
)

// User is an authenticated operator of the ledger.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Name         string   `json:"name"`
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	BranchID     *string  `json:"branchID,omitempty"` // assigned branch for branch-scoped roles
	IsActive     bool     `json:"isActive"`
	AuditFields
}

// Caller is the identity attached to a request, as resolved by the auth layer.
type Caller struct {
	UserID   string
	Role     UserRole
	BranchID *string
}

// IsBranchScoped reports whether the caller may only act within its own branch.
func (c Caller) IsBranchScoped() bool {
	return c.Role == RoleAccountant
}

// CallerFromUser builds the request-scoped caller identity from a user row.
func CallerFromUser(u *User) Caller {
	return Caller{UserID: u.UserID, Role: u.Role, BranchID: u.BranchID}
}
