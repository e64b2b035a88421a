package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TransactionRepo TransactionRepositoryWithTx
	InventoryRepo   InventoryRepositoryFacade
	DebtRepo        DebtRepositoryFacade
	UserRepo        UserRepositoryFacade
	BranchRepo      BranchRepositoryFacade
	ContactRepo     ContactRepositoryFacade
	EmployeeRepo    EmployeeRepositoryFacade
	CurrencyRepo    CurrencyRepositoryFacade
	AuditLogRepo    AuditLogRepositoryFacade
}
