package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tradecore/internal/domain"
)

// Order is created atomically with its items and is never physically deleted:
// the lifecycle ends in completed or cancelled. TotalAmount is fixed at
// creation time from the line-item price snapshots and never recomputed.
type Order struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber string     `gorm:"uniqueIndex;not null"`
	ClientID    *uuid.UUID `gorm:"type:uuid;index"`
	EmployeeID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status      domain.OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	TotalAmount decimal.Decimal    `gorm:"type:decimal(12,2);not null"`
	Notes       *string
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Client   *Client     `gorm:"foreignKey:ClientID"`
	Employee *Employee   `gorm:"foreignKey:EmployeeID"`
	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem is an immutable line of its parent order. UnitPrice is the
// product's price snapshot taken at reservation time, deliberately decoupled
// from later price changes.
type OrderItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (i *OrderItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
