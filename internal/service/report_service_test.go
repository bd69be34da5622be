package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradecore/internal/domain"
	"tradecore/internal/dto"
	"tradecore/internal/repository"
	"tradecore/internal/service"
)

type stubReportRepo struct {
	completed int64
	cancelled int64
	revenue   decimal.Decimal
	top       []repository.TopProductAgg

	lastFrom time.Time
	lastTo   time.Time
}

var _ repository.ReportRepository = (*stubReportRepo)(nil)

func (r *stubReportRepo) CountCompletedInRange(_ context.Context, from, to time.Time) (int64, error) {
	r.lastFrom, r.lastTo = from, to
	return r.completed, nil
}

func (r *stubReportRepo) CountCancelledInRange(_ context.Context, _, _ time.Time) (int64, error) {
	return r.cancelled, nil
}

func (r *stubReportRepo) RevenueInRange(_ context.Context, _, _ time.Time) (decimal.Decimal, error) {
	return r.revenue, nil
}

func (r *stubReportRepo) TopProductsInRange(_ context.Context, _, _ time.Time, limit int) ([]repository.TopProductAgg, error) {
	if len(r.top) > limit {
		return r.top[:limit], nil
	}
	return r.top, nil
}

func TestSalesSummaryMapsAggregates(t *testing.T) {
	repo := &stubReportRepo{
		completed: 12,
		cancelled: 3,
		revenue:   decimal.NewFromInt(4500),
		top: []repository.TopProductAgg{
			{ProductID: "p1", Name: "Yerba 1kg", Quantity: 40, Revenue: decimal.NewFromInt(2000)},
			{ProductID: "p2", Name: "Azúcar", Quantity: 25, Revenue: decimal.NewFromInt(900)},
		},
	}
	svc := service.NewReportService(repo, t.TempDir())

	resp, err := svc.SalesSummary(context.Background(), dto.SalesReportFilter{
		From: "2026-08-01",
		To:   "2026-08-15",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(12), resp.OrdersCompleted)
	assert.Equal(t, int64(3), resp.OrdersCancelled)
	assert.True(t, resp.Revenue.Equal(decimal.NewFromInt(4500)))
	require.Len(t, resp.TopProducts, 2)
	assert.Equal(t, "Yerba 1kg", resp.TopProducts[0].Name)
	assert.Equal(t, "2026-08-01", resp.From)
	assert.Equal(t, "2026-08-15", resp.To)
}

func TestSalesSummaryRangeIsHalfOpenOnDays(t *testing.T) {
	repo := &stubReportRepo{revenue: decimal.Zero}
	svc := service.NewReportService(repo, t.TempDir())

	_, err := svc.SalesSummary(context.Background(), dto.SalesReportFilter{
		From: "2026-08-01",
		To:   "2026-08-01",
	})
	require.NoError(t, err)

	// A single-day filter covers that entire day.
	assert.Equal(t, 0, repo.lastFrom.Hour())
	assert.Equal(t, 24*time.Hour, repo.lastTo.Sub(repo.lastFrom))
}

func TestSalesSummaryDefaultsToLastThirtyDays(t *testing.T) {
	repo := &stubReportRepo{revenue: decimal.Zero}
	svc := service.NewReportService(repo, t.TempDir())

	_, err := svc.SalesSummary(context.Background(), dto.SalesReportFilter{})
	require.NoError(t, err)

	assert.True(t, repo.lastTo.After(time.Now()), "range extends through today")
	assert.Equal(t, 31*24*time.Hour, repo.lastTo.Sub(repo.lastFrom))
}

func TestSalesSummaryRejectsBadDates(t *testing.T) {
	svc := service.NewReportService(&stubReportRepo{revenue: decimal.Zero}, t.TempDir())

	_, err := svc.SalesSummary(context.Background(), dto.SalesReportFilter{From: "01/08/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	_, err = svc.SalesSummary(context.Background(), dto.SalesReportFilter{From: "2026-08-20", To: "2026-08-10"})
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestExportSalesPDFWritesFile(t *testing.T) {
	repo := &stubReportRepo{
		completed: 2,
		revenue:   decimal.NewFromInt(300),
		top: []repository.TopProductAgg{
			{ProductID: "p1", Name: "Harina", Quantity: 6, Revenue: decimal.NewFromInt(300)},
		},
	}
	dir := t.TempDir()
	svc := service.NewReportService(repo, dir)

	resp, err := svc.ExportSalesPDF(context.Background(), dto.SalesReportFilter{
		From: "2026-08-01",
		To:   "2026-08-15",
	})
	require.NoError(t, err)

	require.NotEmpty(t, resp.PDFPath)
	assert.FileExists(t, resp.PDFPath)
}
