package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wrsoft/branchledger/internal/apperrors"
	"github.com/wrsoft/branchledger/internal/core/domain"
	portsrepo "github.com/wrsoft/branchledger/internal/core/ports/repositories"
	portssvc "github.com/wrsoft/branchledger/internal/core/ports/services"
	"github.com/wrsoft/branchledger/internal/dto"
	"github.com/wrsoft/branchledger/internal/middleware"
	"github.com/wrsoft/branchledger/internal/utils/money"
)

var (
	ErrMissingUnitPrice    = errors.New("unit price is required for purchase operations")
	ErrQuantityNotPositive = errors.New("quantity must be positive")
	ErrUnknownOperation    = errors.New("unknown inventory operation type")
)

// inventoryService is the valuation engine: it turns line item inputs into
// computed line items plus mutation instructions, and serves the stock read
// path. Weighted-average costing keeps valuation order-independent without
// tracking FIFO/LIFO lot history.
type inventoryService struct {
	inventoryRepo portsrepo.InventoryRepositoryFacade
	branchSvc     portssvc.BranchSvcFacade
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepositoryFacade, branchSvc portssvc.BranchSvcFacade) portssvc.InventorySvcFacade {
	return &inventoryService{inventoryRepo: inventoryRepo, branchSvc: branchSvc}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// ProcessOperation validates one line item input against current stock and
// produces the PostingLine for the atomic unit.
//
// The sufficiency check here gives early, descriptive failures; the
// persistence layer re-enforces it with a conditional update so a concurrent
// consumption racing past this check still cannot drive quantity negative.
func (s *inventoryService) ProcessOperation(ctx context.Context, branchID string, transactionID string, category domain.Category, input dto.LineItemInput, actorUserID string) (*portssvc.PostingLine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidOperationType(input.OperationType) {
		return nil, fmt.Errorf("%w: %s: %q", apperrors.ErrValidation, ErrUnknownOperation, input.OperationType)
	}
	if input.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrQuantityNotPositive)
	}
	if input.UnitPrice != nil && input.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price must not be negative", apperrors.ErrValidation)
	}

	item, err := s.inventoryRepo.FindItemForBranch(ctx, input.InventoryItemID, branchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: inventory item %s not found in branch %s", apperrors.ErrNotFound, input.InventoryItemID, branchID)
		}
		return nil, fmt.Errorf("failed to load inventory item %s: %w", input.InventoryItemID, err)
	}

	now := time.Now().UTC()

	var unitPrice decimal.Decimal
	mutation := domain.InventoryMutation{
		ItemID:        item.ItemID,
		BranchID:      branchID,
		OperationType: input.OperationType,
		Quantity:      input.Quantity,
	}
	var movement *domain.InventoryMovement

	switch input.OperationType {
	case domain.OperationPurchase:
		if input.UnitPrice == nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrMissingUnitPrice)
		}
		unitPrice = *input.UnitPrice
		mutation.UnitPrice = unitPrice
		mutation.NewSellingPrice = input.SellingPrice

	case domain.OperationConsumption:
		if !item.HasSufficientStock(input.Quantity) {
			return nil, apperrors.NewInsufficientStockError(item.ItemID, item.Quantity, input.Quantity)
		}
		// Consumption is valued at the supplied price (e.g. the selling
		// price on a sale) or the current weighted-average cost.
		if input.UnitPrice != nil {
			unitPrice = *input.UnitPrice
		} else {
			unitPrice = item.CostPerUnit
		}
		movement = &domain.InventoryMovement{
			MovementID:    uuid.NewString(),
			ItemID:        item.ItemID,
			BranchID:      branchID,
			TransactionID: transactionID,
			OperationType: domain.OperationConsumption,
			Quantity:      input.Quantity,
			Unit:          item.Unit,
			Reason:        fmt.Sprintf("Consumed by %s transaction", category),
			RecordedBy:    actorUserID,
			RecordedAt:    now,
		}
	}

	totals := money.CalculateItemTotal(input.Quantity, unitPrice, input.DiscountType, input.DiscountValue)

	lineItem := domain.TransactionLineItem{
		LineItemID:         uuid.NewString(),
		TransactionID:      transactionID,
		InventoryItemID:    item.ItemID,
		InventorySubUnitID: input.InventorySubUnitID,
		Quantity:           input.Quantity,
		UnitPrice:          unitPrice,
		OperationType:      input.OperationType,
		DiscountType:       input.DiscountType,
		DiscountValue:      input.DiscountValue,
		Subtotal:           totals.Subtotal,
		DiscountAmount:     totals.DiscountAmount,
		Total:              totals.Total,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	logger.Debug("Processed inventory operation",
		slog.String("item_id", item.ItemID),
		slog.String("operation", string(input.OperationType)),
		slog.String("quantity", input.Quantity.String()),
		slog.String("line_total", totals.Total.String()))

	return &portssvc.PostingLine{LineItem: lineItem, Mutation: mutation, Movement: movement}, nil
}

// CreateItem registers a new stock item in the resolved branch.
func (s *inventoryService) CreateItem(ctx context.Context, caller domain.Caller, req dto.CreateInventoryItemRequest) (*domain.InventoryItem, error) {
	branchID, err := s.branchSvc.ResolveBranchID(ctx, caller, req.BranchID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := domain.InventoryItem{
		ItemID:      uuid.NewString(),
		BranchID:    branchID,
		Name:        req.Name,
		Unit:        req.Unit,
		Quantity:    decimal.Zero,
		CostPerUnit: decimal.Zero,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.UserID,
		},
	}
	if req.SellingPrice != nil {
		item.SellingPrice = *req.SellingPrice
	}

	if err := s.inventoryRepo.SaveItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save inventory item: %w", err)
	}
	return &item, nil
}

// GetItem retrieves one item within the caller's branch scope.
func (s *inventoryService) GetItem(ctx context.Context, caller domain.Caller, itemID string, branchID *string) (*domain.InventoryItem, error) {
	filter, err := s.branchSvc.EffectiveBranchFilter(ctx, caller, branchID)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		return nil, fmt.Errorf("%w: branchID is required", apperrors.ErrValidation)
	}
	return s.inventoryRepo.FindItemForBranch(ctx, itemID, *filter)
}

// ListItems retrieves a page of items for the resolved branch.
func (s *inventoryService) ListItems(ctx context.Context, caller domain.Caller, params dto.ListInventoryParams) (*dto.ListInventoryItemsResponse, error) {
	filter, err := s.branchSvc.EffectiveBranchFilter(ctx, caller, params.BranchID)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		return nil, fmt.Errorf("%w: branchID is required", apperrors.ErrValidation)
	}

	items, nextToken, err := s.inventoryRepo.ListItemsByBranch(ctx, *filter, normalizeLimit(params.Limit), params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	return &dto.ListInventoryItemsResponse{Items: dto.ToInventoryItemResponses(items), NextToken: nextToken}, nil
}

// ListMovements retrieves the movement history of one item.
func (s *inventoryService) ListMovements(ctx context.Context, caller domain.Caller, itemID string, params dto.ListInventoryParams) (*dto.ListInventoryMovementsResponse, error) {
	filter, err := s.branchSvc.EffectiveBranchFilter(ctx, caller, params.BranchID)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		return nil, fmt.Errorf("%w: branchID is required", apperrors.ErrValidation)
	}

	moves, nextToken, err := s.inventoryRepo.ListMovementsByItem(ctx, itemID, *filter, normalizeLimit(params.Limit), params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory movements: %w", err)
	}
	return &dto.ListInventoryMovementsResponse{Movements: dto.ToInventoryMovementResponses(moves), NextToken: nextToken}, nil
}
