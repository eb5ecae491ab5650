package services

import (
	"context"

	"github.com/tasktrail/tasktrail/models"
	"github.com/tasktrail/tasktrail/repositories"
)

// AuditService interface exposes read access to the audit trail.
type AuditService interface {
	ListLogs(ctx context.Context, query models.PageQuery) (*models.AuditLogPage, error)
}

type auditService struct {
	auditRepo repositories.AuditRepository
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repositories.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

// ListLogs retrieves one page of audit entries, newest first.
func (s *auditService) ListLogs(ctx context.Context, query models.PageQuery) (*models.AuditLogPage, error) {
	entries, total, err := s.auditRepo.List(ctx, query.Offset(), query.Limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.AuditLogEntry{}
	}

	return &models.AuditLogPage{
		Logs:       entries,
		Total:      total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: models.TotalPages(total, query.Limit),
	}, nil
}
