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

type PgxDebtRepository struct {
	BaseRepository
}

// newPgxDebtRepository creates a new repository for payables and receivables.
// Debt rows are only ever inserted inside SavePosting; this repository serves
// the read path.
func newPgxDebtRepository(pool *pgxpool.Pool) portsrepo.DebtRepositoryFacade {
	return &PgxDebtRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.DebtRepositoryFacade = (*PgxDebtRepository)(nil)

const payableColumns = `
	payable_id, branch_id, contact_id, linked_transaction_id, description,
	original_amount, remaining_amount, status, due_date,
	created_at, created_by, last_updated_at, last_updated_by`

const receivableColumns = `
	receivable_id, branch_id, contact_id, linked_transaction_id, description,
	original_amount, remaining_amount, status, due_date,
	created_at, created_by, last_updated_at, last_updated_by`

// FindPayableByID retrieves a single payable.
func (r *PgxDebtRepository) FindPayableByID(ctx context.Context, payableID string) (*domain.AccountPayable, error) {
	query := `
		SELECT ` + payableColumns + `
		FROM accounts_payable
		WHERE payable_id = $1;
	`
	var m models.AccountPayable
	err := r.Pool.QueryRow(ctx, query, payableID).Scan(
		&m.PayableID,
		&m.BranchID,
		&m.ContactID,
		&m.LinkedTransactionID,
		&m.Description,
		&m.OriginalAmount,
		&m.RemainingAmount,
		&m.Status,
		&m.DueDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payable by ID "+payableID, err)
	}
	domainPayable := mapping.ToDomainAccountPayable(m)
	return &domainPayable, nil
}

// ListPayables retrieves a token-paginated page of payables, newest first.
func (r *PgxDebtRepository) ListPayables(ctx context.Context, filter portsrepo.DebtFilter) ([]domain.AccountPayable, *string, error) {
	query, args, limit, err := buildDebtQuery("accounts_payable", payableColumns, filter)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query payables", err)
	}
	defer rows.Close()

	modelPayables := []models.AccountPayable{}
	for rows.Next() {
		var m models.AccountPayable
		err := rows.Scan(
			&m.PayableID,
			&m.BranchID,
			&m.ContactID,
			&m.LinkedTransactionID,
			&m.Description,
			&m.OriginalAmount,
			&m.RemainingAmount,
			&m.Status,
			&m.DueDate,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan payable row", err)
		}
		modelPayables = append(modelPayables, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating payable rows", err)
	}

	var nextToken *string
	if len(modelPayables) > limit {
		modelPayables = modelPayables[:limit]
		last := modelPayables[len(modelPayables)-1]
		token := pagination.EncodeDateBasedToken(last.CreatedAt)
		nextToken = &token
	}

	return mapping.ToDomainAccountPayableSlice(modelPayables), nextToken, nil
}

// FindReceivableByID retrieves a single receivable.
func (r *PgxDebtRepository) FindReceivableByID(ctx context.Context, receivableID string) (*domain.AccountReceivable, error) {
	query := `
		SELECT ` + receivableColumns + `
		FROM accounts_receivable
		WHERE receivable_id = $1;
	`
	var m models.AccountReceivable
	err := r.Pool.QueryRow(ctx, query, receivableID).Scan(
		&m.ReceivableID,
		&m.BranchID,
		&m.ContactID,
		&m.LinkedTransactionID,
		&m.Description,
		&m.OriginalAmount,
		&m.RemainingAmount,
		&m.Status,
		&m.DueDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find receivable by ID "+receivableID, err)
	}
	domainReceivable := mapping.ToDomainAccountReceivable(m)
	return &domainReceivable, nil
}

// ListReceivables retrieves a token-paginated page of receivables, newest first.
func (r *PgxDebtRepository) ListReceivables(ctx context.Context, filter portsrepo.DebtFilter) ([]domain.AccountReceivable, *string, error) {
	query, args, limit, err := buildDebtQuery("accounts_receivable", receivableColumns, filter)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query receivables", err)
	}
	defer rows.Close()

	modelReceivables := []models.AccountReceivable{}
	for rows.Next() {
		var m models.AccountReceivable
		err := rows.Scan(
			&m.ReceivableID,
			&m.BranchID,
			&m.ContactID,
			&m.LinkedTransactionID,
			&m.Description,
			&m.OriginalAmount,
			&m.RemainingAmount,
			&m.Status,
			&m.DueDate,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan receivable row", err)
		}
		modelReceivables = append(modelReceivables, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating receivable rows", err)
	}

	var nextToken *string
	if len(modelReceivables) > limit {
		modelReceivables = modelReceivables[:limit]
		last := modelReceivables[len(modelReceivables)-1]
		token := pagination.EncodeDateBasedToken(last.CreatedAt)
		nextToken = &token
	}

	return mapping.ToDomainAccountReceivableSlice(modelReceivables), nextToken, nil
}

// buildDebtQuery assembles the shared filter/cursor SQL for both debt tables.
func buildDebtQuery(table, columns string, filter portsrepo.DebtFilter) (string, []interface{}, int, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := "SELECT " + columns + " FROM " + table + " WHERE 1=1"
	args := []interface{}{}

	if filter.BranchID != nil {
		args = append(args, *filter.BranchID)
		query += " AND branch_id = $" + strconv.Itoa(len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += " AND status = $" + strconv.Itoa(len(args))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		lastCreatedAt, decodeErr := pagination.DecodeDateBasedToken(*filter.NextToken)
		if decodeErr != nil {
			return "", nil, 0, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt)
		query += " AND created_at < $" + strconv.Itoa(len(args))
	}

	args = append(args, fetchLimit)
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args)) + ";"
	return query, args, limit, nil
}
