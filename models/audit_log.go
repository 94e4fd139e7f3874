package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditLog struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	ActorID      string         `gorm:"column:actor_id;type:varchar(36);index" json:"actor_id"`
	ActorKind    string         `gorm:"column:actor_kind;size:16" json:"actor_kind"`
	Action       string         `gorm:"size:64;index" json:"action"`
	ResourceType string         `gorm:"column:resource_type;size:64;index" json:"resource_type"`
	ResourceID   string         `gorm:"column:resource_id;size:64;index" json:"resource_id"`
	Before       datatypes.JSON `gorm:"column:before_json" json:"before,omitempty"`
	After        datatypes.JSON `gorm:"column:after_json" json:"after,omitempty"`
	IPAddress    string         `gorm:"column:ip_address;size:64" json:"ip_address"`
	CreatedAt    time.Time      `json:"created_at"`
}
