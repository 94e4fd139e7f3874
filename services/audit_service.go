package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hotel-ops/models"
)

type AuditService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewAuditService(db *gorm.DB, log *zap.Logger) *AuditService {
	return &AuditService{DB: db, Log: log}
}

// Record stores an audit entry. Failures are logged and never block the
// audited operation.
func (s *AuditService) Record(ctx context.Context, who Identity, action, resourceType, resourceID string, before, after any, ip string) {
	entry := models.AuditLog{
		ActorID:      who.SubjectID,
		ActorKind:    who.Kind,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ip,
	}
	if before != nil {
		entry.Before = jsonValue(before)
	}
	if after != nil {
		entry.After = jsonValue(after)
	}
	if err := s.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		s.Log.Warn("failed to write audit log",
			zap.String("action", action),
			zap.String("resource", resourceType+"/"+resourceID),
			zap.Error(err),
		)
	}
}

func (s *AuditService) List(ctx context.Context, resourceType string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	db := s.DB.WithContext(ctx)
	if resourceType != "" {
		db = db.Where("resource_type = ?", resourceType)
	}
	logs := []models.AuditLog{}
	if err := db.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}
