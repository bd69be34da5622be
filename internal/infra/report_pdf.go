package infra

// report_pdf.go — Sales summary PDF export using go-pdf/fpdf.
// Renders an A4 page with the date range, order counters, total revenue
// and a top-products table, saved to storagePath/reporte_ventas_{from}_{to}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// SalesReportData is the flattened input for the PDF layer so it stays
// decoupled from the service DTOs.
type SalesReportData struct {
	From            string
	To              string
	OrdersCompleted int64
	OrdersCancelled int64
	Revenue         decimal.Decimal
	TopProducts     []SalesReportProduct
}

type SalesReportProduct struct {
	Name     string
	Quantity int
	Revenue  decimal.Decimal
}

// GenerateSalesReportPDF writes the sales summary PDF and returns the path
// of the generated file. storagePath is created if it does not exist.
func GenerateSalesReportPDF(data SalesReportData, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("reporte_ventas_%s_%s.pdf", data.From, data.To)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 10, "Reporte de Ventas", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Período: %s a %s", data.From, data.To), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(4)

	// ── Summary ──────────────────────────────────────────────────────────────
	labelW := contentW * 0.6
	valueW := contentW * 0.4

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(labelW, 7, "Pedidos completados:", "", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 7, fmt.Sprintf("%d", data.OrdersCompleted), "", 1, "R", false, 0, "")

	pdf.CellFormat(labelW, 7, "Pedidos cancelados:", "", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 7, fmt.Sprintf("%d", data.OrdersCancelled), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(labelW, 8, "Ingresos totales:", "", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 8, "$"+data.Revenue.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.Ln(6)

	// ── Top products table ────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 8, "Productos más vendidos", "", 1, "L", false, 0, "")

	col1 := contentW * 0.55 // name
	col2 := contentW * 0.15 // qty
	col3 := contentW * 0.30 // revenue

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1, 7, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 7, "Ingresos", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, p := range data.TopProducts {
		name := p.Name
		if len(name) > 45 {
			name = name[:44] + "…"
		}
		pdf.CellFormat(col1, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("%d", p.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "$"+p.Revenue.StringFixed(2), "", 1, "R", false, 0, "")
	}
	if len(data.TopProducts) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(contentW, 6, "Sin ventas en el período", "", 1, "C", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
