package repositories

import (
	"context"

	"github.com/wrsoft/branchledger/internal/core/domain"
)

// InventoryReader defines read operations for branch-scoped stock.
type InventoryReader interface {
	// FindItemForBranch retrieves an item scoped to (itemID, branchID).
	// An item existing in another branch is still ErrNotFound here, which
	// keeps cross-branch postings from corrupting foreign stock.
	FindItemForBranch(ctx context.Context, itemID string, branchID string) (*domain.InventoryItem, error)

	// ListItemsByBranch retrieves a token-paginated page of items.
	ListItemsByBranch(ctx context.Context, branchID string, limit int, nextToken *string) ([]domain.InventoryItem, *string, error)

	// ListMovementsByItem retrieves the append-only movement history.
	ListMovementsByItem(ctx context.Context, itemID string, branchID string, limit int, nextToken *string) ([]domain.InventoryMovement, *string, error)
}

// InventoryWriter defines write operations outside the posting path.
// Valuation mutations caused by postings go through SavePosting instead.
type InventoryWriter interface {
	// SaveItem registers a new inventory item.
	SaveItem(ctx context.Context, item domain.InventoryItem) error
}

// InventoryRepositoryFacade combines the inventory read and write surfaces.
type InventoryRepositoryFacade interface {
	InventoryReader
	InventoryWriter
}
