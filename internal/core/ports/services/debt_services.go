package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wrsoft/branchledger/internal/core/domain"
	"github.com/wrsoft/branchledger/internal/dto"
)

// PaymentPlan is the outcome of splitting an expense total into a paid part
// and an optional payable for the remainder. paid + remaining always equals
// the total that was split.
type PaymentPlan struct {
	PaidAmount      decimal.Decimal
	RemainingAmount decimal.Decimal
	Payable         *domain.AccountPayable
}

// DebtSpawnerSvc builds debt records during transaction creation. The rows it
// plans are persisted inside the posting's atomic unit; this engine never
// mutates a debt after that.
type DebtSpawnerSvc interface {
	// PlanPartialPayment validates paidAmount against the total and, when a
	// remainder exists, plans a payable owed to contactID. A remainder with
	// no contact is rejected.
	PlanPartialPayment(ctx context.Context, p PartialPaymentInput) (*PaymentPlan, error)

	// PlanReceivable plans a receivable for uncollected income. Requires a
	// positive amount and an existing contact.
	PlanReceivable(ctx context.Context, p ReceivableInput) (*domain.AccountReceivable, error)
}

// PartialPaymentInput carries everything needed to split an expense payment.
type PartialPaymentInput struct {
	TransactionID string
	BranchID      string
	Category      domain.Category
	TotalAmount   decimal.Decimal
	PaidAmount    *decimal.Decimal // nil means fully paid
	ContactID     *string
	DueDate       *time.Time
	ActorUserID   string
	Now           time.Time
}

// ReceivableInput carries everything needed to spawn a receivable.
type ReceivableInput struct {
	TransactionID string
	BranchID      string
	Category      domain.Category
	Amount        decimal.Decimal
	ContactID     *string
	DueDate       *time.Time
	ActorUserID   string
	Now           time.Time
}

// DebtReaderSvc is the payable/receivable read path.
type DebtReaderSvc interface {
	ListPayables(ctx context.Context, caller domain.Caller, params dto.ListDebtsParams) (*dto.ListDebtsResponse, error)
	ListReceivables(ctx context.Context, caller domain.Caller, params dto.ListDebtsParams) (*dto.ListDebtsResponse, error)
}

// DebtSvcFacade combines spawning and reading.
type DebtSvcFacade interface {
	DebtSpawnerSvc
	DebtReaderSvc
}
