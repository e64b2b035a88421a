package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wrsoft/branchledger/internal/apperrors"
	"github.com/wrsoft/branchledger/internal/core/domain"
	portsrepo "github.com/wrsoft/branchledger/internal/core/ports/repositories"
)

type PgxAuditLogRepository struct {
	BaseRepository
}

// newPgxAuditLogRepository creates a new repository for audit records.
func newPgxAuditLogRepository(pool *pgxpool.Pool) portsrepo.AuditLogRepositoryFacade {
	return &PgxAuditLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditLogRepositoryFacade = (*PgxAuditLogRepository)(nil)

// SaveAuditLog inserts one audit record. Called fire-and-forget after commit.
func (r *PgxAuditLogRepository) SaveAuditLog(ctx context.Context, log domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (audit_log_id, user_id, action, entity_type, entity_id, snapshot, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		log.AuditLogID,
		log.UserID,
		string(log.Action),
		log.EntityType,
		log.EntityID,
		log.Snapshot,
		log.RecordedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save audit log "+log.AuditLogID, err)
	}
	return nil
}
