package services

import (
	"context"

	"github.com/wrsoft/branchledger/internal/core/domain"
	"github.com/wrsoft/branchledger/internal/dto"
)

// PostingLine is the result of running the valuation engine over one line
// item input: the computed line item, the instruction for the persistence
// layer, and the movement row for consumptions.
type PostingLine struct {
	LineItem domain.TransactionLineItem
	Mutation domain.InventoryMutation
	Movement *domain.InventoryMovement
}

// InventorySvcFacade is the inventory valuation engine plus its read path.
type InventorySvcFacade interface {
	// ProcessOperation validates one line item input against current stock
	// and produces the PostingLine for the atomic unit. PURCHASE requires a
	// unit price and re-costs the item by weighted average; CONSUMPTION
	// requires sufficient stock and appends a movement record.
	ProcessOperation(ctx context.Context, branchID string, transactionID string, category domain.Category, input dto.LineItemInput, actorUserID string) (*PostingLine, error)

	// CreateItem registers a new stock item for a branch.
	CreateItem(ctx context.Context, caller domain.Caller, req dto.CreateInventoryItemRequest) (*domain.InventoryItem, error)

	// GetItem retrieves one item within the caller's branch scope.
	GetItem(ctx context.Context, caller domain.Caller, itemID string, branchID *string) (*domain.InventoryItem, error)

	// ListItems retrieves a page of items for the resolved branch.
	ListItems(ctx context.Context, caller domain.Caller, params dto.ListInventoryParams) (*dto.ListInventoryItemsResponse, error)

	// ListMovements retrieves the movement history of one item.
	ListMovements(ctx context.Context, caller domain.Caller, itemID string, params dto.ListInventoryParams) (*dto.ListInventoryMovementsResponse, error)
}
