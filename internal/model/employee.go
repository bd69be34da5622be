package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tradecore/internal/domain"
)

// Employee stores system users with role-based access.
// Rol values: admin | manager | content_manager | cashier | viewer.
type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	FullName     string    `gorm:"not null"`
	Email        *string
	Phone        *string
	Position     *string
	Role         domain.Role `gorm:"type:varchar(20);not null;default:'viewer'"`
	IsActive     bool        `gorm:"not null;default:true"`
	LastLogin    *time.Time
	// PasswordChangedAt is set on every password update; MustChangePassword
	// forces a change on first login (seeded admin starts with it set).
	PasswordChangedAt   *time.Time
	FailedLoginAttempts int  `gorm:"not null;default:0"`
	MustChangePassword  bool `gorm:"not null;default:false"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (e *Employee) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
