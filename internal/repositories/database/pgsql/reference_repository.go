package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wrsoft/branchledger/internal/apperrors"
	"github.com/wrsoft/branchledger/internal/core/domain"
	portsrepo "github.com/wrsoft/branchledger/internal/core/ports/repositories"
	"github.com/wrsoft/branchledger/internal/models"
	"github.com/wrsoft/branchledger/internal/utils/mapping"
)

type PgxBranchRepository struct {
	BaseRepository
}

// newPgxBranchRepository creates a new repository for branch data.
func newPgxBranchRepository(pool *pgxpool.Pool) portsrepo.BranchRepositoryFacade {
	return &PgxBranchRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BranchRepositoryFacade = (*PgxBranchRepository)(nil)

const branchColumns = `
	branch_id, name, address, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanBranch(row pgx.Row) (*models.Branch, error) {
	var m models.Branch
	err := row.Scan(
		&m.BranchID,
		&m.Name,
		&m.Address,
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

// FindBranchByID retrieves a branch by its ID.
func (r *PgxBranchRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE branch_id = $1;`
	m, err := scanBranch(r.Pool.QueryRow(ctx, query, branchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find branch by ID "+branchID, err)
	}
	domainBranch := mapping.ToDomainBranch(*m)
	return &domainBranch, nil
}

// ListBranches retrieves all branches ordered by name.
func (r *PgxBranchRepository) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query branches", err)
	}
	defer rows.Close()

	branches := []models.Branch{}
	for rows.Next() {
		m, err := scanBranch(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan branch row", err)
		}
		branches = append(branches, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating branch rows", err)
	}
	return mapping.ToDomainBranchSlice(branches), nil
}

type PgxContactRepository struct {
	BaseRepository
}

// newPgxContactRepository creates a new repository for counterparty data.
func newPgxContactRepository(pool *pgxpool.Pool) portsrepo.ContactRepositoryFacade {
	return &PgxContactRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ContactRepositoryFacade = (*PgxContactRepository)(nil)

const contactColumns = `
	contact_id, name, contact_type, phone, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanContact(row pgx.Row) (*models.Contact, error) {
	var m models.Contact
	err := row.Scan(
		&m.ContactID,
		&m.Name,
		&m.ContactType,
		&m.Phone,
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

// FindContactByID retrieves a contact by its ID.
func (r *PgxContactRepository) FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE contact_id = $1;`
	m, err := scanContact(r.Pool.QueryRow(ctx, query, contactID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find contact by ID "+contactID, err)
	}
	domainContact := mapping.ToDomainContact(*m)
	return &domainContact, nil
}

// ListContacts retrieves all contacts ordered by name.
func (r *PgxContactRepository) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query contacts", err)
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan contact row", err)
		}
		contacts = append(contacts, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating contact rows", err)
	}
	return mapping.ToDomainContactSlice(contacts), nil
}

type PgxEmployeeRepository struct {
	BaseRepository
}

// newPgxEmployeeRepository creates a new repository for the employee directory.
func newPgxEmployeeRepository(pool *pgxpool.Pool) portsrepo.EmployeeRepositoryFacade {
	return &PgxEmployeeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

const employeeColumns = `
	employee_id, branch_id, name, status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanEmployee(row pgx.Row) (*models.Employee, error) {
	var m models.Employee
	err := row.Scan(
		&m.EmployeeID,
		&m.BranchID,
		&m.Name,
		&m.Status,
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

// FindEmployeeByID retrieves an employee by its ID.
func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1;`
	m, err := scanEmployee(r.Pool.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find employee by ID "+employeeID, err)
	}
	domainEmployee := mapping.ToDomainEmployee(*m)
	return &domainEmployee, nil
}

// ListEmployeesByBranch retrieves all employees of one branch ordered by name.
func (r *PgxEmployeeRepository) ListEmployeesByBranch(ctx context.Context, branchID string) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE branch_id = $1 ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, branchID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query employees for branch "+branchID, err)
	}
	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		m, err := scanEmployee(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan employee row", err)
		}
		employees = append(employees, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating employee rows", err)
	}
	return mapping.ToDomainEmployeeSlice(employees), nil
}

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

const currencyColumns = `
	currency_code, symbol, name, precision, is_default,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCurrency(row pgx.Row) (*models.Currency, error) {
	var m models.Currency
	err := row.Scan(
		&m.CurrencyCode,
		&m.Symbol,
		&m.Name,
		&m.Precision,
		&m.IsDefault,
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

// FindCurrencyByCode retrieves a currency by its ISO code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE currency_code = $1;`
	m, err := scanCurrency(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find currency "+code, err)
	}
	domainCurrency := mapping.ToDomainCurrency(*m)
	return &domainCurrency, nil
}

// FindDefaultCurrency retrieves the single currency flagged as default.
func (r *PgxCurrencyRepository) FindDefaultCurrency(ctx context.Context) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE is_default = TRUE LIMIT 1;`
	m, err := scanCurrency(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find default currency", err)
	}
	domainCurrency := mapping.ToDomainCurrency(*m)
	return &domainCurrency, nil
}

// ListCurrencies retrieves all configured currencies.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies ORDER BY currency_code;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query currencies", err)
	}
	defer rows.Close()

	currencies := []models.Currency{}
	for rows.Next() {
		m, err := scanCurrency(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan currency row", err)
		}
		currencies = append(currencies, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating currency rows", err)
	}
	return mapping.ToDomainCurrencySlice(currencies), nil
}
