package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wrsoft/branchledger/internal/core/domain"
	portsrepo "github.com/wrsoft/branchledger/internal/core/ports/repositories"
	portssvc "github.com/wrsoft/branchledger/internal/core/ports/services"
	"github.com/wrsoft/branchledger/internal/middleware"
)

// auditService records mutation trails after the posting has committed.
// Every failure is logged and swallowed; the audit trail is best-effort.
type auditService struct {
	auditRepo portsrepo.AuditLogRepositoryFacade
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo portsrepo.AuditLogRepositoryFacade) portssvc.AuditRecorderSvc {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditRecorderSvc = (*auditService)(nil)

func (s *auditService) LogCreate(ctx context.Context, userID, entityType, entityID string, snapshot any) {
	s.record(ctx, domain.AuditCreate, userID, entityType, entityID, snapshot)
}

func (s *auditService) LogUpdate(ctx context.Context, userID, entityType, entityID string, snapshot any) {
	s.record(ctx, domain.AuditUpdate, userID, entityType, entityID, snapshot)
}

func (s *auditService) LogDelete(ctx context.Context, userID, entityType, entityID string) {
	s.record(ctx, domain.AuditDelete, userID, entityType, entityID, nil)
}

func (s *auditService) record(ctx context.Context, action domain.AuditAction, userID, entityType, entityID string, snapshot any) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var payload []byte
	if snapshot != nil {
		var err error
		payload, err = json.Marshal(snapshot)
		if err != nil {
			logger.Error("Failed to marshal audit snapshot",
				slog.String("error", err.Error()),
				slog.String("entity_id", entityID))
			payload = nil
		}
	}

	entry := domain.AuditLog{
		AuditLogID: uuid.NewString(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Snapshot:   payload,
		RecordedAt: time.Now().UTC(),
	}

	if err := s.auditRepo.SaveAuditLog(ctx, entry); err != nil {
		logger.Error("Failed to save audit log",
			slog.String("error", err.Error()),
			slog.String("action", string(action)),
			slog.String("entity_id", entityID))
	}
}
