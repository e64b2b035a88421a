package services

import (
	"context"

	"github.com/wrsoft/branchledger/internal/core/domain"
)

// AuditRecorderSvc records mutations after the atomic unit commits.
// Implementations must be best-effort: log failures, never propagate them.
type AuditRecorderSvc interface {
	LogCreate(ctx context.Context, userID, entityType, entityID string, snapshot any)
	LogUpdate(ctx context.Context, userID, entityType, entityID string, snapshot any)
	LogDelete(ctx context.Context, userID, entityType, entityID string)
}

// NotificationDispatcherSvc pushes posting events to external channels,
// best-effort, post-commit.
type NotificationDispatcherSvc interface {
	NotifyNewTransaction(ctx context.Context, txn *domain.Transaction)
}

// TransactionBroadcasterSvc pushes live updates to connected clients.
type TransactionBroadcasterSvc interface {
	EmitNewTransaction(txn *domain.Transaction)
}
