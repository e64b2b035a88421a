package repositories

import (
	"context"

	"github.com/wrsoft/branchledger/internal/core/domain"
)

// AuditLogRepositoryFacade persists fire-and-forget audit records. Failures
// here are logged and swallowed; they never fail the originating request.
type AuditLogRepositoryFacade interface {
	SaveAuditLog(ctx context.Context, log domain.AuditLog) error
}
