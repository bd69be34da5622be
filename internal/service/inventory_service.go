package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tradecore/internal/domain"
	"tradecore/internal/dto"
	"tradecore/internal/repository"
)

// InventoryService is the inventory ledger: the sole authority over
// Product.Quantity. ReserveTx/ReleaseTx run inside the order workflow's
// transaction; AdjustStock is the standalone audited correction path.
type InventoryService interface {
	// ReserveTx checks availability and decrements stock as one unit, and
	// returns the unit price snapshot for the line item. Fails with
	// domain.ErrProductNotFound (missing or inactive product) or
	// *domain.InsufficientStockError carrying the available quantity.
	ReserveTx(tx *gorm.DB, productID uuid.UUID, qty int) (decimal.Decimal, error)

	// ReleaseTx reverses a prior reservation on order cancellation.
	ReleaseTx(tx *gorm.DB, productID uuid.UUID, qty int) error

	// AdjustStock applies a manual delta (positive or negative), audited.
	// The resulting quantity may not go below zero.
	AdjustStock(ctx context.Context, actorID uuid.UUID, productID uuid.UUID, delta int, reason string, meta domain.RequestMeta) error

	// LowStockAlerts lists active products at or below their reorder threshold.
	LowStockAlerts(ctx context.Context) ([]dto.StockAlertResponse, error)
}

type inventoryService struct {
	products repository.ProductRepository
	audit    AuditService
}

func NewInventoryService(products repository.ProductRepository, audit AuditService) InventoryService {
	return &inventoryService{products: products, audit: audit}
}

func (s *inventoryService) ReserveTx(tx *gorm.DB, productID uuid.UUID, qty int) (decimal.Decimal, error) {
	p, err := s.products.FindActiveByIDTx(tx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, domain.ErrProductNotFound
		}
		return decimal.Zero, &domain.PersistenceError{Op: "reserve", Err: err}
	}

	rows, err := s.products.DecrementStockGuardedTx(tx, productID, qty)
	if err != nil {
		return decimal.Zero, &domain.PersistenceError{Op: "reserve", Err: err}
	}
	if rows == 0 {
		// The guard failed: the quantity read above is authoritative within
		// this write transaction.
		return decimal.Zero, &domain.InsufficientStockError{ProductID: productID, Available: p.Quantity}
	}

	return p.UnitPrice, nil
}

func (s *inventoryService) ReleaseTx(tx *gorm.DB, productID uuid.UUID, qty int) error {
	// No clamp against max_quantity: restock after cancellation may exceed the
	// configured maximum. Accepted current behavior.
	if err := s.products.IncrementStockTx(tx, productID, qty); err != nil {
		return &domain.PersistenceError{Op: "release", Err: err}
	}
	return nil
}

func (s *inventoryService) AdjustStock(ctx context.Context, actorID uuid.UUID, productID uuid.UUID, delta int, reason string, meta domain.RequestMeta) error {
	return runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		p, err := s.products.FindActiveByIDTx(tx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrProductNotFound
			}
			return &domain.PersistenceError{Op: "adjust_stock", Err: err}
		}

		if delta < 0 {
			rows, err := s.products.DecrementStockGuardedTx(tx, productID, -delta)
			if err != nil {
				return &domain.PersistenceError{Op: "adjust_stock", Err: err}
			}
			if rows == 0 {
				return &domain.InsufficientStockError{ProductID: productID, Available: p.Quantity}
			}
		} else {
			if err := s.products.IncrementStockTx(tx, productID, delta); err != nil {
				return &domain.PersistenceError{Op: "adjust_stock", Err: err}
			}
		}

		return s.audit.RecordTx(tx, AuditEntry{
			EmployeeID: &actorID,
			Action:     ActionAdjustStock,
			Table:      "products",
			RecordID:   &productID,
			OldValues:  map[string]interface{}{"quantity": p.Quantity},
			NewValues:  map[string]interface{}{"quantity": p.Quantity + delta, "reason": reason},
			Meta:       meta,
		})
	})
}

func (s *inventoryService) LowStockAlerts(ctx context.Context) ([]dto.StockAlertResponse, error) {
	products, err := s.products.ListLowStock(ctx)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "low_stock", Err: err}
	}
	alerts := make([]dto.StockAlertResponse, 0, len(products))
	for _, p := range products {
		alerts = append(alerts, dto.StockAlertResponse{
			ProductID:   p.ID.String(),
			SKU:         p.SKU,
			Name:        p.Name,
			Quantity:    p.Quantity,
			MinQuantity: p.MinQuantity,
		})
	}
	return alerts, nil
}
