package domain

// OrderStatus is the lifecycle state of an order. The machine is strictly
// forward: completed and cancelled are terminal.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// allowedTransitions encodes the full state machine:
//
//	pending    -> processing | cancelled
//	processing -> completed  | cancelled
//	completed  -> (terminal)
//	cancelled  -> (terminal)
var allowedTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusCancelled},
}

// ValidStatus reports whether s is one of the four known states.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether from -> to is an allowed status change.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func Terminal(s OrderStatus) bool {
	return s == StatusCompleted || s == StatusCancelled
}
