package service

import (
	"context"
	"time"

	"tradecore/internal/domain"
	"tradecore/internal/dto"
	"tradecore/internal/infra"
	"tradecore/internal/repository"
)

const topProductsLimit = 10

// ReportService builds date-ranged sales summaries over completed orders.
// Ranges are half-open day intervals: [from 00:00, to+1d 00:00).
type ReportService interface {
	SalesSummary(ctx context.Context, filter dto.SalesReportFilter) (*dto.SalesReportResponse, error)
	ExportSalesPDF(ctx context.Context, filter dto.SalesReportFilter) (*dto.SalesReportResponse, error)
}

type reportService struct {
	reports     repository.ReportRepository
	storagePath string
}

func NewReportService(reports repository.ReportRepository, storagePath string) ReportService {
	return &reportService{reports: reports, storagePath: storagePath}
}

func (s *reportService) SalesSummary(ctx context.Context, filter dto.SalesReportFilter) (*dto.SalesReportResponse, error) {
	from, to, err := parseReportRange(filter)
	if err != nil {
		return nil, err
	}

	completed, err := s.reports.CountCompletedInRange(ctx, from, to)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "sales_report", Err: err}
	}
	cancelled, err := s.reports.CountCancelledInRange(ctx, from, to)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "sales_report", Err: err}
	}
	revenue, err := s.reports.RevenueInRange(ctx, from, to)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "sales_report", Err: err}
	}
	top, err := s.reports.TopProductsInRange(ctx, from, to, topProductsLimit)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "sales_report", Err: err}
	}

	rows := make([]dto.TopProductRow, 0, len(top))
	for _, t := range top {
		rows = append(rows, dto.TopProductRow{
			ProductID: t.ProductID,
			Name:      t.Name,
			Quantity:  t.Quantity,
			Revenue:   t.Revenue,
		})
	}

	return &dto.SalesReportResponse{
		From:            from.Format("2006-01-02"),
		To:              to.AddDate(0, 0, -1).Format("2006-01-02"),
		OrdersCompleted: completed,
		OrdersCancelled: cancelled,
		Revenue:         revenue,
		TopProducts:     rows,
	}, nil
}

func (s *reportService) ExportSalesPDF(ctx context.Context, filter dto.SalesReportFilter) (*dto.SalesReportResponse, error) {
	report, err := s.SalesSummary(ctx, filter)
	if err != nil {
		return nil, err
	}

	products := make([]infra.SalesReportProduct, 0, len(report.TopProducts))
	for _, p := range report.TopProducts {
		products = append(products, infra.SalesReportProduct{
			Name:     p.Name,
			Quantity: p.Quantity,
			Revenue:  p.Revenue,
		})
	}

	path, err := infra.GenerateSalesReportPDF(infra.SalesReportData{
		From:            report.From,
		To:              report.To,
		OrdersCompleted: report.OrdersCompleted,
		OrdersCancelled: report.OrdersCancelled,
		Revenue:         report.Revenue,
		TopProducts:     products,
	}, s.storagePath)
	if err != nil {
		return nil, err
	}

	report.PDFPath = path
	return report, nil
}

// parseReportRange resolves the filter into a half-open [from, to) interval.
// Missing bounds default to the last 30 days ending today.
func parseReportRange(filter dto.SalesReportFilter) (time.Time, time.Time, error) {
	now := time.Now()
	to := now
	if filter.To != "" {
		parsed, err := time.Parse("2006-01-02", filter.To)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidDateRange
		}
		to = parsed
	}
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location()).AddDate(0, 0, 1)

	from := to.AddDate(0, 0, -31)
	if filter.From != "" {
		parsed, err := time.Parse("2006-01-02", filter.From)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidDateRange
		}
		from = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, to.Location())
	}

	if !from.Before(to) {
		return time.Time{}, time.Time{}, domain.ErrInvalidDateRange
	}
	return from, to, nil
}
