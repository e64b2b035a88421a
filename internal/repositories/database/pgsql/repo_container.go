package pgsql

import (
	portsrepo "github.com/wrsoft/branchledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: newPgxTransactionRepository(dbPool),
		InventoryRepo:   newPgxInventoryRepository(dbPool),
		DebtRepo:        newPgxDebtRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
		BranchRepo:      newPgxBranchRepository(dbPool),
		ContactRepo:     newPgxContactRepository(dbPool),
		EmployeeRepo:    newPgxEmployeeRepository(dbPool),
		CurrencyRepo:    newPgxCurrencyRepository(dbPool),
		AuditLogRepo:    newPgxAuditLogRepository(dbPool),
	}
}
