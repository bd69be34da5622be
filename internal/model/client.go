package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a registered buyer. ClientCode is the generated, immutable
// business key. PersonalDataConsent must be true before any order may
// reference the client.
type Client struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientCode          string    `gorm:"uniqueIndex;not null"`
	FullName            string    `gorm:"not null"`
	Phone               *string   `gorm:"index"`
	Email               *string   `gorm:"index"`
	Address             *string
	PersonalDataConsent bool `gorm:"not null;default:false"`
	ConsentDate         *time.Time
	Notes               *string
	CreatedBy           *uuid.UUID `gorm:"type:uuid"`
	IsActive            bool       `gorm:"not null;default:true"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (c *Client) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
