package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Transaction TransactionSvcFacade
	Inventory   InventorySvcFacade
	Debt        DebtSvcFacade
	Branch      BranchSvcFacade
	Auth        AuthSvcFacade
	Employee    EmployeeSvcFacade
	Contact     ContactSvcFacade
	Currency    CurrencySvcFacade
	Audit       AuditRecorderSvc
	Notifier    NotificationDispatcherSvc
	Broadcaster TransactionBroadcasterSvc
}
