package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog is an append-only record of a state-changing action. EmployeeID is
// nullable: nil means a system or anonymous actor (e.g. failed login).
// OldValues/NewValues hold JSON snapshots. Rows are never mutated; a retention
// purge may delete entries older than a configured threshold.
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID *uuid.UUID `gorm:"type:uuid;index"`
	Action     string     `gorm:"not null"`
	Entity     *string    `gorm:"column:table_name"`
	RecordID   *uuid.UUID `gorm:"type:uuid"`
	OldValues  *string
	NewValues  *string
	IPAddress  *string
	UserAgent  *string
	CreatedAt  time.Time `gorm:"index"`
}

func (a *AuditLog) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName overrides GORM's pluralization (audit_logs -> audit_log).
func (AuditLog) TableName() string { return "audit_log" }
