package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wrsoft/branchledger/internal/apperrors"
	"github.com/wrsoft/branchledger/internal/core/domain"
	portsrepo "github.com/wrsoft/branchledger/internal/core/ports/repositories"
	portssvc "github.com/wrsoft/branchledger/internal/core/ports/services"
	"github.com/wrsoft/branchledger/internal/dto"
	"github.com/wrsoft/branchledger/internal/middleware"
)

var (
	ErrPaidAmountOutOfRange = errors.New("paid amount must be between zero and the total amount")
	ErrContactRequired      = errors.New("a contact is required when a debt is spawned")
	ErrDebtAmountNotPositive = errors.New("debt amount must be positive")
)

// debtService plans payables/receivables at posting time and serves the debt
// read path. Planned rows are persisted by the posting repository inside the
// same database transaction as the ledger entry.
type debtService struct {
	debtRepo    portsrepo.DebtRepositoryFacade
	contactRepo portsrepo.ContactRepositoryFacade
	branchSvc   portssvc.BranchSvcFacade
}

// NewDebtService creates a new DebtService.
func NewDebtService(debtRepo portsrepo.DebtRepositoryFacade, contactRepo portsrepo.ContactRepositoryFacade, branchSvc portssvc.BranchSvcFacade) portssvc.DebtSvcFacade {
	return &debtService{debtRepo: debtRepo, contactRepo: contactRepo, branchSvc: branchSvc}
}

var _ portssvc.DebtSvcFacade = (*debtService)(nil)

// PlanPartialPayment splits an expense total into paid and remaining parts.
// paidAmount defaults to the full total. A positive remainder requires a
// contact and yields a payable for exactly that remainder, so that
// paid + remaining == total always holds.
func (s *debtService) PlanPartialPayment(ctx context.Context, p portssvc.PartialPaymentInput) (*portssvc.PaymentPlan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	paid := p.TotalAmount
	if p.PaidAmount != nil {
		paid = *p.PaidAmount
	}

	if paid.IsNegative() || paid.GreaterThan(p.TotalAmount) {
		return nil, fmt.Errorf("%w: paid %s of total %s: %s",
			apperrors.ErrValidation, paid.String(), p.TotalAmount.String(), ErrPaidAmountOutOfRange)
	}

	remaining := p.TotalAmount.Sub(paid)
	if remaining.LessThanOrEqual(decimal.Zero) {
		return &portssvc.PaymentPlan{PaidAmount: paid, RemainingAmount: decimal.Zero}, nil
	}

	// An unpaid remainder without a counterparty cannot be tracked.
	if p.ContactID == nil || *p.ContactID == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrContactRequired)
	}
	contact, err := s.contactRepo.FindContactByID(ctx, *p.ContactID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve contact %s: %w", *p.ContactID, err)
	}

	payable := &domain.AccountPayable{
		PayableID:           uuid.NewString(),
		BranchID:            p.BranchID,
		ContactID:           contact.ContactID,
		LinkedTransactionID: p.TransactionID,
		Description:         fmt.Sprintf("Unpaid remainder of %s expense", p.Category),
		OriginalAmount:      remaining,
		RemainingAmount:     remaining,
		Status:              domain.DebtActive,
		DueDate:             p.DueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     p.Now,
			CreatedBy:     p.ActorUserID,
			LastUpdatedAt: p.Now,
			LastUpdatedBy: p.ActorUserID,
		},
	}

	logger.Debug("Planned payable for unpaid remainder",
		slog.String("payable_id", payable.PayableID),
		slog.String("remaining", remaining.String()))

	return &portssvc.PaymentPlan{PaidAmount: paid, RemainingAmount: remaining, Payable: payable}, nil
}

// PlanReceivable spawns a receivable for uncollected income. The caller opts
// in; the full income amount becomes the debt owed by the contact.
func (s *debtService) PlanReceivable(ctx context.Context, p portssvc.ReceivableInput) (*domain.AccountReceivable, error) {
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDebtAmountNotPositive)
	}
	if p.ContactID == nil || *p.ContactID == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrContactRequired)
	}
	contact, err := s.contactRepo.FindContactByID(ctx, *p.ContactID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve contact %s: %w", *p.ContactID, err)
	}

	return &domain.AccountReceivable{
		ReceivableID:        uuid.NewString(),
		BranchID:            p.BranchID,
		ContactID:           contact.ContactID,
		LinkedTransactionID: p.TransactionID,
		Description:         fmt.Sprintf("Uncollected %s income", p.Category),
		OriginalAmount:      p.Amount,
		RemainingAmount:     p.Amount,
		Status:              domain.DebtActive,
		DueDate:             p.DueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     p.Now,
			CreatedBy:     p.ActorUserID,
			LastUpdatedAt: p.Now,
			LastUpdatedBy: p.ActorUserID,
		},
	}, nil
}

// ListPayables retrieves a page of payables within the caller's branch scope.
func (s *debtService) ListPayables(ctx context.Context, caller domain.Caller, params dto.ListDebtsParams) (*dto.ListDebtsResponse, error) {
	branchFilter, err := s.branchSvc.EffectiveBranchFilter(ctx, caller, params.BranchID)
	if err != nil {
		return nil, err
	}

	payables, nextToken, err := s.debtRepo.ListPayables(ctx, portsrepo.DebtFilter{
		BranchID:  branchFilter,
		Status:    params.Status,
		Limit:     normalizeLimit(params.Limit),
		NextToken: params.NextToken,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list payables: %w", err)
	}

	return &dto.ListDebtsResponse{Debts: dto.ToPayableResponses(payables), NextToken: nextToken}, nil
}

// ListReceivables retrieves a page of receivables within the caller's branch scope.
func (s *debtService) ListReceivables(ctx context.Context, caller domain.Caller, params dto.ListDebtsParams) (*dto.ListDebtsResponse, error) {
	branchFilter, err := s.branchSvc.EffectiveBranchFilter(ctx, caller, params.BranchID)
	if err != nil {
		return nil, err
	}

	receivables, nextToken, err := s.debtRepo.ListReceivables(ctx, portsrepo.DebtFilter{
		BranchID:  branchFilter,
		Status:    params.Status,
		Limit:     normalizeLimit(params.Limit),
		NextToken: params.NextToken,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list receivables: %w", err)
	}

	return &dto.ListDebtsResponse{Debts: dto.ToReceivableResponses(receivables), NextToken: nextToken}, nil
}

// normalizeLimit clamps a caller-supplied page size into a sane range.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}
