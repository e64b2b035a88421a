package services

import (
	"time"

	portsrepo "github.com/wrsoft/branchledger/internal/core/ports/repositories"
	portssvc "github.com/wrsoft/branchledger/internal/core/ports/services"
	"github.com/wrsoft/branchledger/internal/utils"
)

// AuthConfig carries the token-issuing parameters for the auth service.
type AuthConfig struct {
	JWTSecret string
	JWTExpiry time.Duration
	JWTIssuer string
}

// NewServiceContainer wires all application services over the repository
// provider. The broadcaster is injected by the caller because it owns the
// hub's lifecycle.
func NewServiceContainer(
	repos portsrepo.RepositoryProvider,
	authCfg AuthConfig,
	posthogClient *utils.PosthogClientWrapper,
	broadcaster portssvc.TransactionBroadcasterSvc,
) *portssvc.ServiceContainer {
	branchSvc := NewBranchService(repos.BranchRepo)
	inventorySvc := NewInventoryService(repos.InventoryRepo, branchSvc)
	debtSvc := NewDebtService(repos.DebtRepo, repos.ContactRepo, branchSvc)
	currencySvc := NewCurrencyService(repos.CurrencyRepo)
	auditSvc := NewAuditService(repos.AuditLogRepo)
	notifierSvc := NewNotificationService(posthogClient, currencySvc)

	transactionSvc := NewTransactionService(
		repos.TransactionRepo,
		repos.EmployeeRepo,
		inventorySvc,
		debtSvc,
		branchSvc,
		currencySvc,
		auditSvc,
		notifierSvc,
		broadcaster,
	)

	return &portssvc.ServiceContainer{
		Transaction: transactionSvc,
		Inventory:   inventorySvc,
		Debt:        debtSvc,
		Branch:      branchSvc,
		Auth:        NewAuthService(repos.UserRepo, authCfg.JWTSecret, authCfg.JWTExpiry, authCfg.JWTIssuer),
		Employee:    NewEmployeeService(repos.EmployeeRepo, branchSvc),
		Contact:     NewContactService(repos.ContactRepo),
		Currency:    currencySvc,
		Audit:       auditSvc,
		Notifier:    notifierSvc,
		Broadcaster: broadcaster,
	}
}
