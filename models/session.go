package models

import "time"

const (
	SubjectStaff = "staff"
	SubjectOwner = "owner"
)

// Session is the database-backed session record used when no redis is
// configured.
type Session struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	SubjectID   string    `gorm:"column:subject_id;type:varchar(36);index" json:"subject_id"`
	SubjectKind string    `gorm:"column:subject_kind;size:16" json:"subject_kind"`
	Role        string    `gorm:"size:100" json:"role"`
	ExpiresAt   time.Time `gorm:"column:expires_at;index" json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}
