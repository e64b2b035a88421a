package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wrsoft/branchledger/internal/apperrors"
	"github.com/wrsoft/branchledger/internal/core/domain"
	portsrepo "github.com/wrsoft/branchledger/internal/core/ports/repositories"
	portssvc "github.com/wrsoft/branchledger/internal/core/ports/services"
	"github.com/wrsoft/branchledger/internal/dto"
	"github.com/wrsoft/branchledger/internal/middleware"
	"github.com/wrsoft/branchledger/internal/utils/money"
)

var (
	ErrUnknownCategory        = errors.New("unknown category")
	ErrCategoryTypeMismatch   = errors.New("category does not belong to this transaction type")
	ErrAmountOrItems          = errors.New("exactly one of amount or items must be supplied")
	ErrAmountNotPositive      = errors.New("amount must be positive")
	ErrDateInFuture           = errors.New("transaction date must not be in the future")
	ErrItemsNotAllowed        = errors.New("category does not allow line items")
	ErrDiscountNotAllowed     = errors.New("category does not allow discounts")
	ErrDiscountWithItems      = errors.New("transaction-level discount cannot be combined with line items")
	ErrDiscountValueMissing   = errors.New("discount value is required when a discount type is set")
	ErrEmployeeRequired       = errors.New("an employee reference is required for this category")
	ErrEmployeeNotActive      = errors.New("referenced employee is not active")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrTransactionLinked      = errors.New("transaction is linked to a debt record and cannot be modified")
	ErrPayableOptOutRemainder = errors.New("cannot opt out of debt creation while a remainder is unpaid")
)

// transactionService is the posting orchestrator: it validates a posting
// request against the category policy, runs the valuation and debt engines,
// and hands the resulting Posting to the repository as one atomic unit.
type transactionService struct {
	txnRepo      portsrepo.TransactionRepositoryWithTx
	employeeRepo portsrepo.EmployeeRepositoryFacade
	inventorySvc portssvc.InventorySvcFacade
	debtSvc      portssvc.DebtSvcFacade
	branchSvc    portssvc.BranchSvcFacade
	currencySvc  portssvc.CurrencySvcFacade
	audit        portssvc.AuditRecorderSvc
	notifier     portssvc.NotificationDispatcherSvc
	broadcaster  portssvc.TransactionBroadcasterSvc
}

// NewTransactionService creates a new TransactionService. The audit, notifier
// and broadcaster collaborators may be nil; they are post-commit best-effort.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryWithTx,
	employeeRepo portsrepo.EmployeeRepositoryFacade,
	inventorySvc portssvc.InventorySvcFacade,
	debtSvc portssvc.DebtSvcFacade,
	branchSvc portssvc.BranchSvcFacade,
	currencySvc portssvc.CurrencySvcFacade,
	audit portssvc.AuditRecorderSvc,
	notifier portssvc.NotificationDispatcherSvc,
	broadcaster portssvc.TransactionBroadcasterSvc,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:      txnRepo,
		employeeRepo: employeeRepo,
		inventorySvc: inventorySvc,
		debtSvc:      debtSvc,
		branchSvc:    branchSvc,
		currencySvc:  currencySvc,
		audit:        audit,
		notifier:     notifier,
		broadcaster:  broadcaster,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// postingInput is the normalized, type-independent part of a posting request.
type postingInput struct {
	date           time.Time
	category       domain.Category
	paymentMethod  *domain.PaymentMethod
	amount         *decimal.Decimal
	items          []dto.LineItemInput
	discountType   *domain.DiscountType
	discountValue  *decimal.Decimal
	discountReason string
	branchID       *string
	notes          string
	employeeID     *string
	contactID      *string
}

// validatePosting runs steps 1-3 of the posting pipeline: branch resolution,
// category policy checks, and input-shape validation. It returns the resolved
// branch and the category policy.
func (s *transactionService) validatePosting(ctx context.Context, caller domain.Caller, txnType domain.TransactionType, in postingInput) (string, domain.CategoryPolicy, error) {
	branchID, err := s.branchSvc.ResolveBranchID(ctx, caller, in.branchID)
	if err != nil {
		return "", domain.CategoryPolicy{}, err
	}

	policy, ok := domain.PolicyFor(in.category)
	if !ok {
		return "", policy, fmt.Errorf("%w: %s: %q", apperrors.ErrValidation, ErrUnknownCategory, in.category)
	}
	if policy.TransactionType != txnType {
		return "", policy, fmt.Errorf("%w: %s: %q is not an %s category", apperrors.ErrValidation, ErrCategoryTypeMismatch, in.category, txnType)
	}

	if in.date.After(time.Now().UTC()) {
		return "", policy, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDateInFuture)
	}

	if txnType == domain.Income {
		if in.paymentMethod == nil || !domain.ValidPaymentMethod(*in.paymentMethod) {
			return "", policy, fmt.Errorf("%w: %s for income", apperrors.ErrValidation, ErrInvalidPaymentMethod)
		}
	} else if in.paymentMethod != nil && !domain.ValidPaymentMethod(*in.paymentMethod) {
		return "", policy, fmt.Errorf("%w: %s: %q", apperrors.ErrValidation, ErrInvalidPaymentMethod, *in.paymentMethod)
	}

	hasAmount := in.amount != nil
	hasItems := len(in.items) > 0
	if hasAmount == hasItems {
		return "", policy, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountOrItems)
	}
	if hasAmount && in.amount.LessThanOrEqual(decimal.Zero) {
		return "", policy, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}
	if hasItems && !policy.AllowsMultiItem {
		return "", policy, fmt.Errorf("%w: %s: %q", apperrors.ErrValidation, ErrItemsNotAllowed, in.category)
	}

	hasDiscount := in.discountType != nil || in.discountValue != nil
	if hasDiscount {
		if !policy.AllowsDiscount {
			return "", policy, fmt.Errorf("%w: %s: %q", apperrors.ErrValidation, ErrDiscountNotAllowed, in.category)
		}
		if in.discountType == nil || !domain.ValidDiscountType(*in.discountType) {
			return "", policy, fmt.Errorf("%w: invalid discount type", apperrors.ErrValidation)
		}
		if in.discountValue == nil {
			return "", policy, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDiscountValueMissing)
		}
		if in.discountValue.IsNegative() {
			return "", policy, fmt.Errorf("%w: discount value must not be negative", apperrors.ErrValidation)
		}
		// With line items the amount is the exact sum of item totals, so the
		// discount has to be expressed per item.
		if hasItems {
			return "", policy, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDiscountWithItems)
		}
	}

	if policy.RequiresEmployee {
		if in.employeeID == nil || *in.employeeID == "" {
			return "", policy, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEmployeeRequired)
		}
		employee, err := s.employeeRepo.FindEmployeeByID(ctx, *in.employeeID)
		if err != nil {
			return "", policy, fmt.Errorf("failed to resolve employee %s: %w", *in.employeeID, err)
		}
		if employee.Status != domain.EmployeeActive {
			return "", policy, fmt.Errorf("%w: %s (status %s)", apperrors.ErrValidation, ErrEmployeeNotActive, employee.Status)
		}
	}

	return branchID, policy, nil
}

// computeLines runs step 4: line items through the valuation engine, or the
// flat amount through the discount calculator. It returns the computed total,
// transaction-level discount, and the posting lines.
func (s *transactionService) computeLines(ctx context.Context, branchID, transactionID string, caller domain.Caller, in postingInput) (decimal.Decimal, decimal.Decimal, []portssvc.PostingLine, error) {
	if len(in.items) == 0 {
		totals := money.CalculateDiscount(*in.amount, in.discountType, in.discountValue)
		return totals.Total, totals.DiscountAmount, nil, nil
	}

	total := decimal.Zero
	lines := make([]portssvc.PostingLine, 0, len(in.items))
	for i, item := range in.items {
		line, err := s.inventorySvc.ProcessOperation(ctx, branchID, transactionID, in.category, item, caller.UserID)
		if err != nil {
			return decimal.Zero, decimal.Zero, nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		total = total.Add(line.LineItem.Total)
		lines = append(lines, *line)
	}
	return total, decimal.Zero, lines, nil
}

// buildTransaction assembles the domain transaction common to both posting types.
func buildTransaction(transactionID string, txnType domain.TransactionType, branchID, currencyCode string, caller domain.Caller, in postingInput, now time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID:   transactionID,
		TransactionType: txnType,
		Category:        in.category,
		PaymentMethod:   in.paymentMethod,
		CurrencyCode:    currencyCode,
		TransactionDate: in.date,
		BranchID:        branchID,
		Notes:           in.notes,
		DiscountType:    in.discountType,
		DiscountValue:   in.discountValue,
		DiscountReason:  in.discountReason,
		EmployeeID:      in.employeeID,
		ContactID:       in.contactID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.UserID,
		},
	}
}

// CreateIncome posts an income transaction.
// Implements portssvc.TransactionSvcFacade.
func (s *transactionService) CreateIncome(ctx context.Context, caller domain.Caller, req dto.CreateIncomeRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	in := postingInput{
		date:           req.Date,
		category:       req.Category,
		paymentMethod:  &req.PaymentMethod,
		amount:         req.Amount,
		items:          req.Items,
		discountType:   req.DiscountType,
		discountValue:  req.DiscountValue,
		discountReason: req.DiscountReason,
		branchID:       req.BranchID,
		notes:          req.Notes,
		contactID:      req.ContactID,
	}

	branchID, _, err := s.validatePosting(ctx, caller, domain.Income, in)
	if err != nil {
		return nil, err
	}

	currency, err := s.currencySvc.GetDefaultCurrency(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve default currency: %w", err)
	}

	now := time.Now().UTC()
	transactionID := uuid.NewString()

	total, discountAmount, lines, err := s.computeLines(ctx, branchID, transactionID, caller, in)
	if err != nil {
		return nil, err
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	txn := buildTransaction(transactionID, domain.Income, branchID, currency.CurrencyCode, caller, in, now)
	txn.Amount = total
	txn.TotalAmount = total
	txn.PaidAmount = total
	txn.DiscountAmount = discountAmount

	var receivable *domain.AccountReceivable
	if req.CreateReceivable {
		receivable, err = s.debtSvc.PlanReceivable(ctx, portssvc.ReceivableInput{
			TransactionID: transactionID,
			BranchID:      branchID,
			Category:      in.category,
			Amount:        total,
			ContactID:     req.ContactID,
			DueDate:       req.ReceivableDueDate,
			ActorUserID:   caller.UserID,
			Now:           now,
		})
		if err != nil {
			return nil, err
		}
		txn.LinkedReceivableID = &receivable.ReceivableID
	}

	posting := assemblePosting(txn, lines)
	posting.Receivable = receivable

	if err := s.txnRepo.SavePosting(ctx, posting); err != nil {
		logger.Error("Failed to save income posting", slog.String("error", err.Error()), slog.String("branch_id", branchID))
		return nil, fmt.Errorf("failed to save posting: %w", err)
	}

	logger.Info("Income posted",
		slog.String("transaction_id", transactionID),
		slog.String("branch_id", branchID),
		slog.String("amount", total.String()))

	saved := posting.Transaction
	saved.LineItems = posting.LineItems
	s.dispatchSideEffects(ctx, caller, &saved, domain.AuditCreate)
	return &saved, nil
}

// CreateExpense posts an expense transaction; an unpaid remainder spawns a payable.
// Implements portssvc.TransactionSvcFacade.
func (s *transactionService) CreateExpense(ctx context.Context, caller domain.Caller, req dto.CreateExpenseRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	in := postingInput{
		date:           req.Date,
		category:       req.Category,
		paymentMethod:  req.PaymentMethod,
		amount:         req.Amount,
		items:          req.Items,
		discountType:   req.DiscountType,
		discountValue:  req.DiscountValue,
		discountReason: req.DiscountReason,
		branchID:       req.BranchID,
		notes:          req.Notes,
		employeeID:     req.EmployeeID,
		contactID:      req.ContactID,
	}

	branchID, _, err := s.validatePosting(ctx, caller, domain.Expense, in)
	if err != nil {
		return nil, err
	}

	currency, err := s.currencySvc.GetDefaultCurrency(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve default currency: %w", err)
	}

	now := time.Now().UTC()
	transactionID := uuid.NewString()

	total, discountAmount, lines, err := s.computeLines(ctx, branchID, transactionID, caller, in)
	if err != nil {
		return nil, err
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	plan, err := s.debtSvc.PlanPartialPayment(ctx, portssvc.PartialPaymentInput{
		TransactionID: transactionID,
		BranchID:      branchID,
		Category:      in.category,
		TotalAmount:   total,
		PaidAmount:    req.PaidAmount,
		ContactID:     req.ContactID,
		DueDate:       req.PayableDueDate,
		ActorUserID:   caller.UserID,
		Now:           now,
	})
	if err != nil {
		return nil, err
	}
	if plan.Payable != nil && req.CreateDebtForRemaining != nil && !*req.CreateDebtForRemaining {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPayableOptOutRemainder)
	}

	txn := buildTransaction(transactionID, domain.Expense, branchID, currency.CurrencyCode, caller, in, now)
	txn.Amount = plan.PaidAmount
	txn.TotalAmount = total
	txn.PaidAmount = plan.PaidAmount
	txn.DiscountAmount = discountAmount
	if plan.Payable != nil {
		txn.LinkedPayableID = &plan.Payable.PayableID
	}

	posting := assemblePosting(txn, lines)
	posting.Payable = plan.Payable

	if err := s.txnRepo.SavePosting(ctx, posting); err != nil {
		logger.Error("Failed to save expense posting", slog.String("error", err.Error()), slog.String("branch_id", branchID))
		return nil, fmt.Errorf("failed to save posting: %w", err)
	}

	logger.Info("Expense posted",
		slog.String("transaction_id", transactionID),
		slog.String("branch_id", branchID),
		slog.String("total", total.String()),
		slog.String("paid", plan.PaidAmount.String()))

	saved := posting.Transaction
	saved.LineItems = posting.LineItems
	s.dispatchSideEffects(ctx, caller, &saved, domain.AuditCreate)
	return &saved, nil
}

// assemblePosting collects the computed lines into the atomic-unit bundle.
func assemblePosting(txn domain.Transaction, lines []portssvc.PostingLine) domain.Posting {
	posting := domain.Posting{Transaction: txn}
	for _, line := range lines {
		posting.LineItems = append(posting.LineItems, line.LineItem)
		posting.Mutations = append(posting.Mutations, line.Mutation)
		if line.Movement != nil {
			posting.Movements = append(posting.Movements, *line.Movement)
		}
	}
	return posting
}

// dispatchSideEffects fires the post-commit collaborators. They run on a
// detached context so a slow audit sink cannot stall the response, and their
// failures are logged inside the implementations, never propagated: the
// posting already committed.
func (s *transactionService) dispatchSideEffects(ctx context.Context, caller domain.Caller, txn *domain.Transaction, action domain.AuditAction) {
	logger := middleware.GetLoggerFromCtx(ctx)
	detached := middleware.WithLogger(context.Background(), logger)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic in post-commit side effects", slog.Any("panic", r))
			}
		}()
		if s.audit != nil {
			switch action {
			case domain.AuditCreate:
				s.audit.LogCreate(detached, caller.UserID, "transaction", txn.TransactionID, txn)
			case domain.AuditUpdate:
				s.audit.LogUpdate(detached, caller.UserID, "transaction", txn.TransactionID, txn)
			case domain.AuditDelete:
				s.audit.LogDelete(detached, caller.UserID, "transaction", txn.TransactionID)
			}
		}
		if action == domain.AuditCreate {
			if s.notifier != nil {
				s.notifier.NotifyNewTransaction(detached, txn)
			}
			if s.broadcaster != nil {
				s.broadcaster.EmitNewTransaction(txn)
			}
		}
	}()
}

// GetTransactionByID retrieves a transaction with its line items.
// Implements portssvc.TransactionSvcFacade.
func (s *transactionService) GetTransactionByID(ctx context.Context, caller domain.Caller, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if caller.IsBranchScoped() && (caller.BranchID == nil || txn.BranchID != *caller.BranchID) {
		// Obscure existence of foreign-branch transactions.
		return nil, apperrors.ErrNotFound
	}
	return txn, nil
}

// ListTransactions retrieves a filtered page of transactions.
// Implements portssvc.TransactionSvcFacade.
func (s *transactionService) ListTransactions(ctx context.Context, caller domain.Caller, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	branchFilter, err := s.branchSvc.EffectiveBranchFilter(ctx, caller, params.BranchID)
	if err != nil {
		return nil, err
	}

	txns, nextToken, err := s.txnRepo.ListTransactions(ctx, portsrepo.TransactionFilter{
		BranchID:        branchFilter,
		TransactionType: params.TransactionType,
		Category:        params.Category,
		DateFrom:        params.DateFrom,
		DateTo:          params.DateTo,
		Limit:           normalizeLimit(params.Limit),
		NextToken:       params.NextToken,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// GetSummary aggregates income/expense totals for the caller's scope.
// Implements portssvc.TransactionSvcFacade.
func (s *transactionService) GetSummary(ctx context.Context, caller domain.Caller, params dto.SummaryParams) (*dto.SummaryResponse, error) {
	branchFilter, err := s.branchSvc.EffectiveBranchFilter(ctx, caller, params.BranchID)
	if err != nil {
		return nil, err
	}

	summary, err := s.txnRepo.SummarizeTransactions(ctx, portsrepo.SummaryFilter{
		BranchID: branchFilter,
		DateFrom: params.DateFrom,
		DateTo:   params.DateTo,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}

	resp := dto.ToSummaryResponse(summary)
	return &resp, nil
}

// UpdateTransaction applies partial field updates to an unlinked transaction.
// Implements portssvc.TransactionSvcFacade.
func (s *transactionService) UpdateTransaction(ctx context.Context, caller domain.Caller, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.GetTransactionByID(ctx, caller, transactionID)
	if err != nil {
		return nil, err
	}

	// Transactions that spawned a debt are immutable: the debt's amounts
	// were derived from them and later payment flows depend on that link.
	if txn.IsLinkedToDebt() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrTransactionLinked)
	}

	updated := false
	if req.Date != nil {
		if req.Date.After(time.Now().UTC()) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDateInFuture)
		}
		txn.TransactionDate = *req.Date
		updated = true
	}
	if req.PaymentMethod != nil {
		if !domain.ValidPaymentMethod(*req.PaymentMethod) {
			return nil, fmt.Errorf("%w: %s: %q", apperrors.ErrValidation, ErrInvalidPaymentMethod, *req.PaymentMethod)
		}
		txn.PaymentMethod = req.PaymentMethod
		updated = true
	}
	if req.Notes != nil {
		txn.Notes = *req.Notes
		updated = true
	}
	if req.DiscountReason != nil {
		txn.DiscountReason = *req.DiscountReason
		updated = true
	}

	if !updated {
		return txn, nil
	}

	now := time.Now().UTC()
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = caller.UserID

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		logger.Error("Failed to update transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	s.dispatchSideEffects(ctx, caller, txn, domain.AuditUpdate)
	return txn, nil
}

// DeleteTransaction soft-deletes an unlinked transaction.
// Implements portssvc.TransactionSvcFacade.
func (s *transactionService) DeleteTransaction(ctx context.Context, caller domain.Caller, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.GetTransactionByID(ctx, caller, transactionID)
	if err != nil {
		return err
	}
	if txn.IsLinkedToDebt() {
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrTransactionLinked)
	}

	now := time.Now().UTC()
	if err := s.txnRepo.SoftDeleteTransaction(ctx, transactionID, caller.UserID, now); err != nil {
		logger.Error("Failed to delete transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.dispatchSideEffects(ctx, caller, txn, domain.AuditDelete)
	return nil
}
