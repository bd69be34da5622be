package dto

import "github.com/shopspring/decimal"

type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// CreateOrderRequest: items intentionally carries no min-length validator tag —
// an empty list is a domain outcome (EmptyOrder), not a malformed request.
type CreateOrderRequest struct {
	ClientID *string            `json:"client_id,omitempty" validate:"omitempty,uuid"`
	Items    []OrderItemRequest `json:"items"`
	Notes    *string            `json:"notes,omitempty"`
}

type TransitionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing completed cancelled"`
}

type OrderItemResponse struct {
	ProductID  string          `json:"product_id"`
	Product    string          `json:"product,omitempty"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type OrderResponse struct {
	ID          string              `json:"id"`
	OrderNumber string              `json:"order_number"`
	ClientID    *string             `json:"client_id,omitempty"`
	EmployeeID  string              `json:"employee_id"`
	Status      string              `json:"status"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	Notes       *string             `json:"notes,omitempty"`
	Items       []OrderItemResponse `json:"items"`
	CreatedAt   string              `json:"created_at"`
	CompletedAt *string             `json:"completed_at,omitempty"`
}

type OrderFilter struct {
	Status string `form:"status"` // pending | processing | completed | cancelled | all
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// OrderStatsResponse feeds the admin dashboard counters.
type OrderStatsResponse struct {
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Completed  int64 `json:"completed"`
	Cancelled  int64 `json:"cancelled"`
}
