package repositories

import (
	"context"

	"github.com/wrsoft/branchledger/internal/core/domain"
)

// UserReader defines read operations for users.
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	SaveUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines the user read and write surfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
