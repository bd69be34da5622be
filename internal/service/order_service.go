package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tradecore/internal/domain"
	"tradecore/internal/dto"
	"tradecore/internal/model"
	"tradecore/internal/repository"
)

// OrderService is the order workflow engine: creation with atomic stock
// reservation, the status state machine, and compensating stock release on
// cancellation. Authorization is the caller's responsibility — the engine
// trusts an already-authorized request.
type OrderService interface {
	CreateOrder(ctx context.Context, employeeID uuid.UUID, req dto.CreateOrderRequest, meta domain.RequestMeta) (*dto.OrderResponse, error)
	TransitionStatus(ctx context.Context, orderID uuid.UUID, newStatus domain.OrderStatus, actorID uuid.UUID, meta domain.RequestMeta) error
	GetOrder(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	ListOrders(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	Stats(ctx context.Context) (*dto.OrderStatsResponse, error)
}

type orderService struct {
	orders    repository.OrderRepository
	clients   repository.ClientRepository
	inventory InventoryService
	audit     AuditService
}

func NewOrderService(
	orders repository.OrderRepository,
	clients repository.ClientRepository,
	inventory InventoryService,
	audit AuditService,
) OrderService {
	return &orderService{orders: orders, clients: clients, inventory: inventory, audit: audit}
}

// CreateOrder runs the full creation contract as one atomic unit:
//  1. reject empty item lists before touching the store
//  2. resolve the optional client (must be active and have data consent)
//  3. reserve stock per item in submitted order — any failure rolls back
//     every reservation made so far
//  4. persist order + items with the total computed from price snapshots
//  5. write the CREATE_ORDER audit entry inside the same transaction
func (s *orderService) CreateOrder(ctx context.Context, employeeID uuid.UUID, req dto.CreateOrderRequest, meta domain.RequestMeta) (*dto.OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	var clientID *uuid.UUID
	if req.ClientID != nil && *req.ClientID != "" {
		id, err := uuid.Parse(*req.ClientID)
		if err != nil {
			return nil, domain.ErrClientNotFound
		}
		clientID = &id
	}

	var order model.Order
	txErr := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		if clientID != nil {
			c, err := s.clients.FindActiveByIDTx(tx, *clientID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrClientNotFound
				}
				return &domain.PersistenceError{Op: "create_order", Err: err}
			}
			if !c.PersonalDataConsent {
				return domain.ErrConsentRequired
			}
		}

		total := decimal.Zero
		items := make([]model.OrderItem, 0, len(req.Items))
		for _, it := range req.Items {
			pid, err := uuid.Parse(it.ProductID)
			if err != nil {
				return domain.ErrProductNotFound
			}
			price, err := s.inventory.ReserveTx(tx, pid, it.Quantity)
			if err != nil {
				return err
			}
			lineTotal := price.Mul(decimal.NewFromInt(int64(it.Quantity)))
			total = total.Add(lineTotal)
			items = append(items, model.OrderItem{
				ProductID:  pid,
				Quantity:   it.Quantity,
				UnitPrice:  price,
				TotalPrice: lineTotal,
			})
		}

		order = model.Order{
			OrderNumber: newOrderNumber(),
			ClientID:    clientID,
			EmployeeID:  employeeID,
			Status:      domain.StatusPending,
			TotalAmount: total,
			Notes:       req.Notes,
			Items:       items,
		}
		if err := s.orders.CreateTx(tx, &order); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrDuplicateKey
			}
			return &domain.PersistenceError{Op: "create_order", Err: err}
		}

		return s.audit.RecordTx(tx, AuditEntry{
			EmployeeID: &employeeID,
			Action:     ActionCreateOrder,
			Table:      "orders",
			RecordID:   &order.ID,
			NewValues:  req,
			Meta:       meta,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	return orderToResponse(&order), nil
}

// TransitionStatus applies the state machine. Cancellation releases every line
// item's stock inside the same transaction as the status change — a failure at
// any step leaves order and inventory untouched.
func (s *orderService) TransitionStatus(ctx context.Context, orderID uuid.UUID, newStatus domain.OrderStatus, actorID uuid.UUID, meta domain.RequestMeta) error {
	return runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		order, err := s.orders.FindByIDTx(tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return &domain.PersistenceError{Op: "transition_status", Err: err}
		}

		// Terminal states absorb every request, including repeats of themselves.
		if domain.Terminal(order.Status) || !domain.CanTransition(order.Status, newStatus) {
			return &domain.InvalidTransitionError{From: order.Status, To: newStatus}
		}

		if newStatus == domain.StatusCancelled {
			for _, item := range order.Items {
				if err := s.inventory.ReleaseTx(tx, item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}

		var completedAt *time.Time
		if newStatus == domain.StatusCompleted {
			now := time.Now()
			completedAt = &now
		}
		if err := s.orders.UpdateStatusTx(tx, orderID, newStatus, completedAt); err != nil {
			return &domain.PersistenceError{Op: "transition_status", Err: err}
		}

		return s.audit.RecordTx(tx, AuditEntry{
			EmployeeID: &actorID,
			Action:     ActionUpdateOrderStatus,
			Table:      "orders",
			RecordID:   &orderID,
			OldValues:  map[string]interface{}{"status": order.Status},
			NewValues:  map[string]interface{}{"status": newStatus},
			Meta:       meta,
		})
	})
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, &domain.PersistenceError{Op: "get_order", Err: err}
	}
	return orderToResponse(order), nil
}

func (s *orderService) ListOrders(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	// The status filter arrives as a raw query parameter with no binding
	// validation behind it.
	if filter.Status != "" && filter.Status != "all" && !domain.ValidStatus(domain.OrderStatus(filter.Status)) {
		return nil, domain.ErrInvalidStatusFilter
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list_orders", Err: err}
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, *orderToResponse(&orders[i]))
	}
	return &dto.OrderListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *orderService) Stats(ctx context.Context) (*dto.OrderStatsResponse, error) {
	stats := &dto.OrderStatsResponse{}
	counters := []struct {
		status domain.OrderStatus
		dest   *int64
	}{
		{domain.StatusPending, &stats.Pending},
		{domain.StatusProcessing, &stats.Processing},
		{domain.StatusCompleted, &stats.Completed},
		{domain.StatusCancelled, &stats.Cancelled},
	}
	for _, c := range counters {
		count, err := s.orders.CountByStatus(ctx, c.status)
		if err != nil {
			return nil, &domain.PersistenceError{Op: "order_stats", Err: err}
		}
		*c.dest = count
	}
	return stats, nil
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		items = append(items, dto.OrderItemResponse{
			ProductID:  item.ProductID.String(),
			Product:    name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		})
	}
	resp := &dto.OrderResponse{
		ID:          o.ID.String(),
		OrderNumber: o.OrderNumber,
		EmployeeID:  o.EmployeeID.String(),
		Status:      string(o.Status),
		TotalAmount: o.TotalAmount,
		Notes:       o.Notes,
		Items:       items,
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
	}
	if o.ClientID != nil {
		id := o.ClientID.String()
		resp.ClientID = &id
	}
	if o.CompletedAt != nil {
		t := o.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &t
	}
	return resp
}
