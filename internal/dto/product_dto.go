package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Description *string         `json:"description,omitempty"`
	Category    string          `json:"category" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"min=0"`
	Quantity    int             `json:"quantity" validate:"min=0"`
	MinQuantity int             `json:"min_quantity" validate:"min=0"`
	MaxQuantity int             `json:"max_quantity" validate:"min=0"`
	Supplier    *string         `json:"supplier,omitempty"`
	Barcode     *string         `json:"barcode,omitempty"`
}

type UpdateProductRequest struct {
	Name        string           `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Category    string           `json:"category,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	MinQuantity *int             `json:"min_quantity,omitempty"`
	MaxQuantity *int             `json:"max_quantity,omitempty"`
	Supplier    *string          `json:"supplier,omitempty"`
	Barcode     *string          `json:"barcode,omitempty"`
}

// AdjustStockRequest is a manual correction; delta may be negative but the
// resulting stock may not go below zero.
type AdjustStockRequest struct {
	Delta  int    `json:"delta" validate:"required"`
	Reason string `json:"reason" validate:"required"`
}

type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Category    string          `json:"category"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"min_quantity"`
	MaxQuantity int             `json:"max_quantity"`
	Supplier    *string         `json:"supplier,omitempty"`
	Barcode     *string         `json:"barcode,omitempty"`
	IsActive    bool            `json:"is_active"`
}

type ProductFilter struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Active   string `form:"active"` // "false" | "all" | default activos
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// StockAlertResponse flags products at or below their reorder threshold.
type StockAlertResponse struct {
	ProductID   string `json:"product_id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"min_quantity"`
}
