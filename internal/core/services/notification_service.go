package services

import (
	"context"

	"github.com/wrsoft/branchledger/internal/core/domain"
	portssvc "github.com/wrsoft/branchledger/internal/core/ports/services"
	"github.com/wrsoft/branchledger/internal/utils"
)

// notificationService forwards posting events to the analytics sink.
type notificationService struct {
	client      *utils.PosthogClientWrapper
	currencySvc portssvc.CurrencySvcFacade
}

// NewNotificationService creates a new NotificationService. The wrapped client
// is nil-safe, so an unconfigured sink makes every dispatch a no-op.
func NewNotificationService(client *utils.PosthogClientWrapper, currencySvc portssvc.CurrencySvcFacade) portssvc.NotificationDispatcherSvc {
	return &notificationService{client: client, currencySvc: currencySvc}
}

var _ portssvc.NotificationDispatcherSvc = (*notificationService)(nil)

// NotifyNewTransaction emits a posting event. Amounts are sent as strings to
// keep decimal precision intact in the sink.
func (s *notificationService) NotifyNewTransaction(ctx context.Context, txn *domain.Transaction) {
	if s.client == nil {
		return
	}

	totalAmount := txn.TotalAmount.String()
	paidAmount := txn.PaidAmount.String()
	if s.currencySvc != nil {
		if currency, err := s.currencySvc.GetCurrencyByCode(ctx, txn.CurrencyCode); err == nil {
			totalAmount = utils.FormatWithCurrencyPrecision(txn.TotalAmount, *currency)
			paidAmount = utils.FormatWithCurrencyPrecision(txn.PaidAmount, *currency)
		}
	}

	s.client.Enqueue(txn.CreatedBy, "transaction_posted", map[string]any{
		"transaction_id":   txn.TransactionID,
		"transaction_type": string(txn.TransactionType),
		"category":         string(txn.Category),
		"branch_id":        txn.BranchID,
		"total_amount":     totalAmount,
		"paid_amount":      paidAmount,
		"currency":         txn.CurrencyCode,
		"line_items":       len(txn.LineItems),
	})
}
