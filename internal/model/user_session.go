package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserSession records an issued token for traceability and server-side
// revocation on logout. Expiry is also embedded in the JWT itself.
type UserSession struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index"`
	SessionToken string    `gorm:"uniqueIndex;not null"`
	IPAddress    *string
	UserAgent    *string
	ExpiresAt    time.Time
	IsActive     bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	LastActivity time.Time
}

func (s *UserSession) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
