package dto

import "github.com/shopspring/decimal"

type SalesReportFilter struct {
	From string `form:"from"` // YYYY-MM-DD, default: 30 days ago
	To   string `form:"to"`   // YYYY-MM-DD, default: today
}

type TopProductRow struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type SalesReportResponse struct {
	From            string          `json:"from"`
	To              string          `json:"to"`
	OrdersCompleted int64           `json:"orders_completed"`
	OrdersCancelled int64           `json:"orders_cancelled"`
	Revenue         decimal.Decimal `json:"revenue"`
	TopProducts     []TopProductRow `json:"top_products"`
	PDFPath         string          `json:"pdf_path,omitempty"`
}
