package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tradecore/internal/domain"
	"tradecore/internal/model"
)

// TopProductAgg is the aggregated per-product sales row for a date range.
type TopProductAgg struct {
	ProductID string
	Name      string
	Quantity  int
	Revenue   decimal.Decimal
}

// ReportRepository holds the read-only aggregate queries behind the sales
// reports. Completed orders are bucketed by completed_at; cancellations by
// their creation date.
type ReportRepository interface {
	CountCompletedInRange(ctx context.Context, from, to time.Time) (int64, error)
	CountCancelledInRange(ctx context.Context, from, to time.Time) (int64, error)
	RevenueInRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	TopProductsInRange(ctx context.Context, from, to time.Time, limit int) ([]TopProductAgg, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) CountCompletedInRange(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status = ? AND completed_at >= ? AND completed_at < ?", domain.StatusCompleted, from, to).
		Count(&count).Error
	return count, err
}

func (r *reportRepo) CountCancelledInRange(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status = ? AND created_at >= ? AND created_at < ?", domain.StatusCancelled, from, to).
		Count(&count).Error
	return count, err
}

func (r *reportRepo) RevenueInRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Where("status = ? AND completed_at >= ? AND completed_at < ?", domain.StatusCompleted, from, to).
		Scan(&row).Error
	return row.Total, err
}

func (r *reportRepo) TopProductsInRange(ctx context.Context, from, to time.Time, limit int) ([]TopProductAgg, error) {
	var rows []TopProductAgg
	err := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Select("order_items.product_id AS product_id, products.name AS name, SUM(order_items.quantity) AS quantity, SUM(order_items.total_price) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.status = ? AND orders.completed_at >= ? AND orders.completed_at < ?", domain.StatusCompleted, from, to).
		Group("order_items.product_id, products.name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
