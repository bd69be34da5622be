package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog item. SKU is the unique, immutable business key.
// Quantity is the authoritative on-hand stock and is mutated only through the
// inventory ledger (guarded decrement on order creation, increment on
// cancellation, audited manual adjustment). MinQuantity/MaxQuantity are
// advisory reorder thresholds — not enforced on writes.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SKU         string    `gorm:"uniqueIndex;not null"`
	Name        string    `gorm:"index;not null"`
	Description *string
	Category    string          `gorm:"index;not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity    int             `gorm:"not null;default:0"`
	MinQuantity int             `gorm:"not null;default:10"`
	MaxQuantity int             `gorm:"not null;default:100"`
	Supplier    *string
	Barcode     *string
	IsActive    bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
