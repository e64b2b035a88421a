package dto

import "github.com/wrsoft/branchledger/internal/core/domain"

// LoginRequest is the credentials payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the API shape of a user, password hash excluded.
type UserResponse struct {
	UserID   string  `json:"userID"`
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Role     string  `json:"role"`
	BranchID *string `json:"branchID,omitempty"`
}

// ToUserResponse converts a domain user to its API shape.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		Name:     u.Name,
		Username: u.Username,
		Role:     string(u.Role),
		BranchID: u.BranchID,
	}
}
