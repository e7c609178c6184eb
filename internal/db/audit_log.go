package db

import "time"

// Audit actions recorded by the admin CMS.
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
)

// AuditLog is an append-only record of an admin mutation. OldValues and
// NewValues hold JSON snapshots: CREATE carries only the new snapshot,
// DELETE only the old one, UPDATE both.
type AuditLog struct {
	ID          uint    `gorm:"primaryKey"`
	UserID      uint    `gorm:"index"`
	UserEmail   string  `gorm:"size:254"`
	Action      string  `gorm:"size:16;not null"`
	TargetTable string  `gorm:"column:table_name;size:64;not null"`
	RecordID    string  `gorm:"size:64"`
	OldValues   *string `gorm:"type:text"`
	NewValues   *string `gorm:"type:text"`
	CreatedAt   time.Time
}

// TableName pins the table name.
func (AuditLog) TableName() string {
	return "audit_logs"
}
