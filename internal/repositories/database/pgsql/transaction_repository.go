package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wrsoft/branchledger/internal/apperrors"
	"github.com/wrsoft/branchledger/internal/core/domain"
	portsrepo "github.com/wrsoft/branchledger/internal/core/ports/repositories"
	"github.com/wrsoft/branchledger/internal/models"
	"github.com/wrsoft/branchledger/internal/utils/mapping"
	"github.com/wrsoft/branchledger/internal/utils/pagination"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger entries.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

const transactionColumns = `
	transaction_id, transaction_type, category, amount, total_amount, paid_amount,
	payment_method, currency_code, transaction_date, branch_id, notes,
	discount_type, discount_value, discount_amount, discount_reason,
	employee_id, contact_id, linked_payable_id, linked_receivable_id,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at, deleted_by`

// SavePosting persists the transaction, its line items, the inventory
// mutations and movements, and any spawned debt within one DB transaction.
// Consumption is applied as a conditional decrement so a concurrent posting
// racing past the service-level check still cannot drive stock negative; the
// failed condition aborts the whole posting.
func (r *PgxTransactionRepository) SavePosting(ctx context.Context, posting domain.Posting) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	// Will be ignored if the transaction is committed successfully
	defer r.Rollback(ctx, tx)

	modelTxn := mapping.ToModelTransaction(posting.Transaction)

	// 1. Insert the transaction row
	txnQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25);
	`
	_, err = tx.Exec(ctx, txnQuery,
		modelTxn.TransactionID,
		modelTxn.TransactionType,
		modelTxn.Category,
		modelTxn.Amount,
		modelTxn.TotalAmount,
		modelTxn.PaidAmount,
		modelTxn.PaymentMethod,
		modelTxn.CurrencyCode,
		modelTxn.TransactionDate,
		modelTxn.BranchID,
		modelTxn.Notes,
		modelTxn.DiscountType,
		modelTxn.DiscountValue,
		modelTxn.DiscountAmount,
		modelTxn.DiscountReason,
		modelTxn.EmployeeID,
		modelTxn.ContactID,
		modelTxn.LinkedPayableID,
		modelTxn.LinkedReceivableID,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
		modelTxn.DeletedAt,
		modelTxn.DeletedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+modelTxn.TransactionID, err)
	}

	// 2. Insert line items as a batch
	if len(posting.LineItems) > 0 {
		batch := &pgx.Batch{}
		lineQuery := `
			INSERT INTO transaction_line_items (
				line_item_id, transaction_id, inventory_item_id, inventory_sub_unit_id,
				quantity, unit_price, operation_type, discount_type, discount_value,
				subtotal, discount_amount, total,
				created_at, created_by, last_updated_at, last_updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
		`
		for _, item := range posting.LineItems {
			modelItem := mapping.ToModelTransactionLineItem(item)
			batch.Queue(lineQuery,
				modelItem.LineItemID,
				modelItem.TransactionID,
				modelItem.InventoryItemID,
				modelItem.InventorySubUnitID,
				modelItem.Quantity,
				modelItem.UnitPrice,
				modelItem.OperationType,
				modelItem.DiscountType,
				modelItem.DiscountValue,
				modelItem.Subtotal,
				modelItem.DiscountAmount,
				modelItem.Total,
				modelItem.CreatedAt,
				modelItem.CreatedBy,
				modelItem.LastUpdatedAt,
				modelItem.LastUpdatedBy,
			)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to insert line items for transaction "+modelTxn.TransactionID, err)
		}
	}

	// 3. Apply inventory mutations
	now := modelTxn.CreatedAt
	userID := modelTxn.CreatedBy
	for _, mut := range posting.Mutations {
		if err := r.applyMutation(ctx, tx, mut, userID, now); err != nil {
			return err
		}
	}

	// 4. Insert movement history rows
	if len(posting.Movements) > 0 {
		batch := &pgx.Batch{}
		moveQuery := `
			INSERT INTO inventory_movements (
				movement_id, item_id, branch_id, transaction_id, operation_type,
				quantity, unit, reason, recorded_by, recorded_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
		`
		for _, move := range posting.Movements {
			modelMove := mapping.ToModelInventoryMovement(move)
			batch.Queue(moveQuery,
				modelMove.MovementID,
				modelMove.ItemID,
				modelMove.BranchID,
				modelMove.TransactionID,
				modelMove.OperationType,
				modelMove.Quantity,
				modelMove.Unit,
				modelMove.Reason,
				modelMove.RecordedBy,
				modelMove.RecordedAt,
			)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to insert inventory movements for transaction "+modelTxn.TransactionID, err)
		}
	}

	// 5. Insert the spawned debt, if any
	if posting.Payable != nil {
		modelPayable := mapping.ToModelAccountPayable(*posting.Payable)
		payableQuery := `
			INSERT INTO accounts_payable (
				payable_id, branch_id, contact_id, linked_transaction_id, description,
				original_amount, remaining_amount, status, due_date,
				created_at, created_by, last_updated_at, last_updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
		`
		_, err = tx.Exec(ctx, payableQuery,
			modelPayable.PayableID,
			modelPayable.BranchID,
			modelPayable.ContactID,
			modelPayable.LinkedTransactionID,
			modelPayable.Description,
			modelPayable.OriginalAmount,
			modelPayable.RemainingAmount,
			modelPayable.Status,
			modelPayable.DueDate,
			modelPayable.CreatedAt,
			modelPayable.CreatedBy,
			modelPayable.LastUpdatedAt,
			modelPayable.LastUpdatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert payable "+modelPayable.PayableID, err)
		}
	}
	if posting.Receivable != nil {
		modelReceivable := mapping.ToModelAccountReceivable(*posting.Receivable)
		receivableQuery := `
			INSERT INTO accounts_receivable (
				receivable_id, branch_id, contact_id, linked_transaction_id, description,
				original_amount, remaining_amount, status, due_date,
				created_at, created_by, last_updated_at, last_updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
		`
		_, err = tx.Exec(ctx, receivableQuery,
			modelReceivable.ReceivableID,
			modelReceivable.BranchID,
			modelReceivable.ContactID,
			modelReceivable.LinkedTransactionID,
			modelReceivable.Description,
			modelReceivable.OriginalAmount,
			modelReceivable.RemainingAmount,
			modelReceivable.Status,
			modelReceivable.DueDate,
			modelReceivable.CreatedAt,
			modelReceivable.CreatedBy,
			modelReceivable.LastUpdatedAt,
			modelReceivable.LastUpdatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert receivable "+modelReceivable.ReceivableID, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit posting "+modelTxn.TransactionID, err)
	}
	return nil
}

// applyMutation applies one purchase or consumption to an inventory item
// inside the posting's database transaction.
func (r *PgxTransactionRepository) applyMutation(ctx context.Context, tx pgx.Tx, mut domain.InventoryMutation, userID string, now time.Time) error {
	switch mut.OperationType {
	case domain.OperationPurchase:
		// Weighted-average cost is recomputed in SQL against the current row
		// so concurrent purchases still conserve total inventory value.
		query := `
			UPDATE inventory_items
			SET cost_per_unit = CASE
					WHEN quantity + $3 > 0
						THEN (quantity * cost_per_unit + $3 * $4) / (quantity + $3)
					ELSE $4
				END,
				quantity = quantity + $3,
				selling_price = COALESCE($5, selling_price),
				last_updated_at = $6,
				last_updated_by = $7
			WHERE item_id = $1 AND branch_id = $2;
		`
		tag, err := tx.Exec(ctx, query, mut.ItemID, mut.BranchID, mut.Quantity, mut.UnitPrice, mut.NewSellingPrice, now, userID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to apply purchase to item "+mut.ItemID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		return nil

	case domain.OperationConsumption:
		// The quantity guard in the WHERE clause is the authoritative
		// sufficiency check; zero rows means either a vanished item or a
		// concurrent consumption that got there first.
		query := `
			UPDATE inventory_items
			SET quantity = quantity - $3,
				last_updated_at = $4,
				last_updated_by = $5
			WHERE item_id = $1 AND branch_id = $2 AND quantity >= $3;
		`
		tag, err := tx.Exec(ctx, query, mut.ItemID, mut.BranchID, mut.Quantity, now, userID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to apply consumption to item "+mut.ItemID, err)
		}
		if tag.RowsAffected() == 0 {
			var available models.InventoryItem
			err := tx.QueryRow(ctx, `SELECT quantity FROM inventory_items WHERE item_id = $1 AND branch_id = $2;`, mut.ItemID, mut.BranchID).Scan(&available.Quantity)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return apperrors.ErrNotFound
				}
				return apperrors.NewAppError(500, "failed to check stock for item "+mut.ItemID, err)
			}
			return apperrors.NewInsufficientStockError(mut.ItemID, available.Quantity, mut.Quantity)
		}
		return nil

	default:
		return apperrors.NewAppError(500, "unknown inventory operation "+string(mut.OperationType), nil)
	}
}

// scanTransaction scans one full transaction row.
func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.TransactionType,
		&m.Category,
		&m.Amount,
		&m.TotalAmount,
		&m.PaidAmount,
		&m.PaymentMethod,
		&m.CurrencyCode,
		&m.TransactionDate,
		&m.BranchID,
		&m.Notes,
		&m.DiscountType,
		&m.DiscountValue,
		&m.DiscountAmount,
		&m.DiscountReason,
		&m.EmployeeID,
		&m.ContactID,
		&m.LinkedPayableID,
		&m.LinkedReceivableID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
		&m.DeletedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindTransactionByID retrieves a transaction with its line items.
// Soft-deleted transactions are treated as not found.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1 AND deleted_at IS NULL;
	`
	modelTxn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}

	lineItems, err := r.findLineItems(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	domainTxn := mapping.ToDomainTransaction(*modelTxn)
	domainTxn.LineItems = lineItems
	return &domainTxn, nil
}

func (r *PgxTransactionRepository) findLineItems(ctx context.Context, transactionID string) ([]domain.TransactionLineItem, error) {
	query := `
		SELECT line_item_id, transaction_id, inventory_item_id, inventory_sub_unit_id,
		       quantity, unit_price, operation_type, discount_type, discount_value,
		       subtotal, discount_amount, total,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM transaction_line_items
		WHERE transaction_id = $1
		ORDER BY created_at, line_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query line items for transaction "+transactionID, err)
	}
	defer rows.Close()

	items := []models.TransactionLineItem{}
	for rows.Next() {
		var m models.TransactionLineItem
		err := rows.Scan(
			&m.LineItemID,
			&m.TransactionID,
			&m.InventoryItemID,
			&m.InventorySubUnitID,
			&m.Quantity,
			&m.UnitPrice,
			&m.OperationType,
			&m.DiscountType,
			&m.DiscountValue,
			&m.Subtotal,
			&m.DiscountAmount,
			&m.Total,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line item row for transaction "+transactionID, err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line item rows for transaction "+transactionID, err)
	}

	return mapping.ToDomainTransactionLineItemSlice(items), nil
}

// ListTransactions retrieves a filtered, token-paginated page of transactions.
// Ordering is (transaction_date DESC, created_at DESC) with a tuple cursor so
// pages stay stable under concurrent inserts.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether there is a next page.
	fetchLimit := limit + 1

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE deleted_at IS NULL
	`
	args := []interface{}{}

	addArg := func(clause string, value interface{}) {
		args = append(args, value)
		query += " AND " + clause + "$" + strconv.Itoa(len(args))
	}

	if filter.BranchID != nil {
		addArg("branch_id = ", *filter.BranchID)
	}
	if filter.TransactionType != nil {
		addArg("transaction_type = ", string(*filter.TransactionType))
	}
	if filter.Category != nil {
		addArg("category = ", string(*filter.Category))
	}
	if filter.DateFrom != nil {
		addArg("transaction_date >= ", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addArg("transaction_date <= ", *filter.DateTo)
	}

	if filter.NextToken != nil && *filter.NextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*filter.NextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		query += " AND (transaction_date, created_at) < ($" + strconv.Itoa(len(args)-1) + ", $" + strconv.Itoa(len(args)) + ")"
	}

	args = append(args, fetchLimit)
	query += " ORDER BY transaction_date DESC, created_at DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	modelTxns := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		modelTxns = append(modelTxns, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	var nextToken *string
	if len(modelTxns) > limit {
		modelTxns = modelTxns[:limit]
		last := modelTxns[len(modelTxns)-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		nextToken = &token
	}

	txns := make([]domain.Transaction, len(modelTxns))
	for i, m := range modelTxns {
		txns[i] = mapping.ToDomainTransaction(m)
	}
	return txns, nextToken, nil
}

// SummarizeTransactions aggregates income/expense totals for the filter.
func (r *PgxTransactionRepository) SummarizeTransactions(ctx context.Context, filter portsrepo.SummaryFilter) (domain.TransactionSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN transaction_type = 'INCOME' THEN amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN transaction_type = 'EXPENSE' THEN amount ELSE 0 END), 0) AS total_expense,
			COUNT(*) AS transaction_count
		FROM transactions
		WHERE deleted_at IS NULL
	`
	args := []interface{}{}

	if filter.BranchID != nil {
		args = append(args, *filter.BranchID)
		query += " AND branch_id = $" + strconv.Itoa(len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += " AND transaction_date >= $" + strconv.Itoa(len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += " AND transaction_date <= $" + strconv.Itoa(len(args))
	}
	query += ";"

	var summary domain.TransactionSummary
	err := r.Pool.QueryRow(ctx, query, args...).Scan(&summary.TotalIncome, &summary.TotalExpense, &summary.TransactionCount)
	if err != nil {
		return domain.TransactionSummary{}, apperrors.NewAppError(500, "failed to summarize transactions", err)
	}
	summary.Net = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary, nil
}

// UpdateTransaction persists partial-field changes to a transaction row.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	modelTxn := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET transaction_date = $2,
			payment_method = $3,
			notes = $4,
			discount_reason = $5,
			last_updated_at = $6,
			last_updated_by = $7
		WHERE transaction_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.TransactionDate,
		modelTxn.PaymentMethod,
		modelTxn.Notes,
		modelTxn.DiscountReason,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+modelTxn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SoftDeleteTransaction marks the transaction deleted without removing it.
func (r *PgxTransactionRepository) SoftDeleteTransaction(ctx context.Context, transactionID string, deletedBy string, deletedAt time.Time) error {
	query := `
		UPDATE transactions
		SET deleted_at = $2, deleted_by = $3, last_updated_at = $2, last_updated_by = $3
		WHERE transaction_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, transactionID, deletedAt, deletedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
