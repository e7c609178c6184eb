package service

import (
	"encoding/json"

	"github.com/infoshqip/internal/db"
	"gorm.io/gorm"
)

// auditLogLimit bounds the admin audit viewer to the most recent entries.
const auditLogLimit = 100

// AuditService records immutable snapshots of every admin content
// mutation. Entries are append-only, there is no update or delete path.
type AuditService struct {
	db *gorm.DB
}

// AuditEntry describes one mutation to record. OldValue and NewValue
// are serialized to JSON; which of the two is present depends on the
// action (create has no old state, delete has no new state).
type AuditEntry struct {
	UserID    uint
	UserEmail string
	Action    string
	TableName string
	RecordID  string
	OldValue  interface{}
	NewValue  interface{}
}

// NewAuditService creates an AuditService instance.
func NewAuditService(gdb *gorm.DB) *AuditService {
	return &AuditService{db: gdb}
}

// Record appends an audit log row. Snapshot presence is forced by the
// action so a caller cannot produce a create entry with old values or a
// delete entry with new values.
func (s *AuditService) Record(entry AuditEntry) error {
	row := db.AuditLog{
		UserID:      entry.UserID,
		UserEmail:   entry.UserEmail,
		Action:      entry.Action,
		TargetTable: entry.TableName,
		RecordID:    entry.RecordID,
	}

	switch entry.Action {
	case db.AuditActionCreate:
		snapshot, err := marshalSnapshot(entry.NewValue)
		if err != nil {
			return err
		}
		row.NewValues = snapshot
	case db.AuditActionDelete:
		snapshot, err := marshalSnapshot(entry.OldValue)
		if err != nil {
			return err
		}
		row.OldValues = snapshot
	case db.AuditActionUpdate:
		oldSnapshot, err := marshalSnapshot(entry.OldValue)
		if err != nil {
			return err
		}
		newSnapshot, err := marshalSnapshot(entry.NewValue)
		if err != nil {
			return err
		}
		row.OldValues = oldSnapshot
		row.NewValues = newSnapshot
	default:
		return validationError("unknown audit action")
	}

	return s.db.Create(&row).Error
}

// Recent returns the newest audit entries, capped at the viewer limit.
func (s *AuditService) Recent() ([]db.AuditLog, error) {
	var logs []db.AuditLog
	if err := s.db.Order("created_at desc, id desc").
		Limit(auditLogLimit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func marshalSnapshot(value interface{}) (*string, error) {
	if value == nil {
		return nil, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	encoded := string(raw)
	return &encoded, nil
}
