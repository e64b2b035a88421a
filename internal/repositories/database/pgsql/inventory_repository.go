package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wrsoft/branchledger/internal/apperrors"
	"github.com/wrsoft/branchledger/internal/core/domain"
	portsrepo "github.com/wrsoft/branchledger/internal/core/ports/repositories"
	"github.com/wrsoft/branchledger/internal/models"
	"github.com/wrsoft/branchledger/internal/utils/mapping"
	"github.com/wrsoft/branchledger/internal/utils/pagination"
)

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository for inventory data.
// Valuation mutations caused by postings happen inside SavePosting; this
// repository serves the read path and item registration.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

const inventoryItemColumns = `
	item_id, branch_id, name, unit, quantity, cost_per_unit, selling_price, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanInventoryItem(row pgx.Row) (*models.InventoryItem, error) {
	var m models.InventoryItem
	err := row.Scan(
		&m.ItemID,
		&m.BranchID,
		&m.Name,
		&m.Unit,
		&m.Quantity,
		&m.CostPerUnit,
		&m.SellingPrice,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindItemForBranch retrieves an item scoped to (itemID, branchID). An item
// living in another branch is still ErrNotFound here.
func (r *PgxInventoryRepository) FindItemForBranch(ctx context.Context, itemID string, branchID string) (*domain.InventoryItem, error) {
	query := `
		SELECT ` + inventoryItemColumns + `
		FROM inventory_items
		WHERE item_id = $1 AND branch_id = $2;
	`
	modelItem, err := scanInventoryItem(r.Pool.QueryRow(ctx, query, itemID, branchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find inventory item "+itemID, err)
	}
	domainItem := mapping.ToDomainInventoryItem(*modelItem)
	return &domainItem, nil
}

// ListItemsByBranch retrieves a token-paginated page of items, newest first.
func (r *PgxInventoryRepository) ListItemsByBranch(ctx context.Context, branchID string, limit int, nextToken *string) ([]domain.InventoryItem, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `
		SELECT ` + inventoryItemColumns + `
		FROM inventory_items
		WHERE branch_id = $1
	`
	args := []interface{}{branchID}

	if nextToken != nil && *nextToken != "" {
		fields, decodeErr := pagination.DecodeMultiFieldToken(*nextToken)
		if decodeErr != nil || len(fields) != 2 {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, fields[0], fields[1])
		query += " AND (name, item_id) > ($" + strconv.Itoa(len(args)-1) + ", $" + strconv.Itoa(len(args)) + ")"
	}

	args = append(args, fetchLimit)
	query += " ORDER BY name, item_id LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query inventory items for branch "+branchID, err)
	}
	defer rows.Close()

	modelItems := []models.InventoryItem{}
	for rows.Next() {
		m, err := scanInventoryItem(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan inventory item row", err)
		}
		modelItems = append(modelItems, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating inventory item rows", err)
	}

	var token *string
	if len(modelItems) > limit {
		modelItems = modelItems[:limit]
		last := modelItems[len(modelItems)-1]
		t := pagination.EncodeMultiFieldToken(last.Name, last.ItemID)
		token = &t
	}

	return mapping.ToDomainInventoryItemSlice(modelItems), token, nil
}

// ListMovementsByItem retrieves the append-only movement history, newest first.
func (r *PgxInventoryRepository) ListMovementsByItem(ctx context.Context, itemID string, branchID string, limit int, nextToken *string) ([]domain.InventoryMovement, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `
		SELECT movement_id, item_id, branch_id, transaction_id, operation_type,
		       quantity, unit, reason, recorded_by, recorded_at
		FROM inventory_movements
		WHERE item_id = $1 AND branch_id = $2
	`
	args := []interface{}{itemID, branchID}

	if nextToken != nil && *nextToken != "" {
		lastRecordedAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastRecordedAt)
		query += " AND recorded_at < $" + strconv.Itoa(len(args))
	}

	args = append(args, fetchLimit)
	query += " ORDER BY recorded_at DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query movements for item "+itemID, err)
	}
	defer rows.Close()

	modelMoves := []models.InventoryMovement{}
	for rows.Next() {
		var m models.InventoryMovement
		err := rows.Scan(
			&m.MovementID,
			&m.ItemID,
			&m.BranchID,
			&m.TransactionID,
			&m.OperationType,
			&m.Quantity,
			&m.Unit,
			&m.Reason,
			&m.RecordedBy,
			&m.RecordedAt,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan movement row for item "+itemID, err)
		}
		modelMoves = append(modelMoves, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating movement rows for item "+itemID, err)
	}

	var token *string
	if len(modelMoves) > limit {
		modelMoves = modelMoves[:limit]
		last := modelMoves[len(modelMoves)-1]
		t := pagination.EncodeDateBasedToken(last.RecordedAt)
		token = &t
	}

	return mapping.ToDomainInventoryMovementSlice(modelMoves), token, nil
}

// SaveItem registers a new inventory item.
func (r *PgxInventoryRepository) SaveItem(ctx context.Context, item domain.InventoryItem) error {
	modelItem := mapping.ToModelInventoryItem(item)
	query := `
		INSERT INTO inventory_items (` + inventoryItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelItem.ItemID,
		modelItem.BranchID,
		modelItem.Name,
		modelItem.Unit,
		modelItem.Quantity,
		modelItem.CostPerUnit,
		modelItem.SellingPrice,
		modelItem.IsActive,
		modelItem.CreatedAt,
		modelItem.CreatedBy,
		modelItem.LastUpdatedAt,
		modelItem.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save inventory item "+modelItem.ItemID, err)
	}
	return nil
}
