package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WebsiteContent is a content-managed block of a public page, addressed by
// (page, section). Version increments on every update; IsPublished gates what
// the public endpoints return.
type WebsiteContent struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PageName    string    `gorm:"not null;index:idx_content_page_section,unique"`
	Section     string    `gorm:"not null;index:idx_content_page_section,unique"`
	ContentType string    `gorm:"not null;default:'text'"` // text | html | json | image_path
	Content     *string
	Metadata    *string
	IsPublished bool `gorm:"not null;default:true"`
	Version     int  `gorm:"not null;default:1"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (w *WebsiteContent) BeforeCreate(*gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

func (WebsiteContent) TableName() string { return "website_content" }
