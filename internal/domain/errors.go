// Package domain holds the business vocabulary shared by services and handlers:
// typed errors, the order status machine, and the role hierarchy. It has no
// dependency on the store or the HTTP layer.
package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound  = errors.New("producto no encontrado")
	ErrClientNotFound   = errors.New("cliente no encontrado")
	ErrOrderNotFound    = errors.New("pedido no encontrado")
	ErrEmployeeNotFound = errors.New("empleado no encontrado")

	// ErrEmptyOrder rejects order creation with no line items, before any persistence.
	ErrEmptyOrder = errors.New("el pedido no tiene items")

	// ErrDuplicateKey signals a generated business key collision (sku, client_code,
	// order_number, username). Callers may retry generation once.
	ErrDuplicateKey = errors.New("clave duplicada")

	// ErrConsentRequired: a client without personal data consent cannot be
	// referenced by an order (regulatory policy).
	ErrConsentRequired = errors.New("el cliente no dio consentimiento de datos personales")

	// ErrOpenOrdersExist blocks product soft-delete while pending/processing
	// orders still reference it.
	ErrOpenOrdersExist = errors.New("existen pedidos abiertos que referencian el producto")

	ErrInvalidCredentials = errors.New("credenciales invalidas")

	// ErrAccountLocked: too many consecutive failed login attempts.
	ErrAccountLocked = errors.New("cuenta bloqueada por intentos fallidos")

	// ErrInvalidDateRange covers malformed or inverted report date filters.
	ErrInvalidDateRange = errors.New("rango de fechas invalido")

	// ErrInvalidStatusFilter: the status query parameter names no known state.
	ErrInvalidStatusFilter = errors.New("estado de pedido desconocido")

	// ErrInvalidRole: the requested role is not part of the hierarchy.
	ErrInvalidRole = errors.New("rol desconocido")
)

// InsufficientStockError carries the available quantity so the caller can
// inform the user exactly how much can still be ordered.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: disponible %d", e.ProductID, e.Available)
}

// InvalidTransitionError reports a status change not allowed by the order
// state machine.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transicion de estado invalida: %s -> %s", e.From, e.To)
}

// PersistenceError wraps an underlying store failure. The transaction it
// occurred in is guaranteed rolled back; the engine does not auto-retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("error de persistencia en %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
