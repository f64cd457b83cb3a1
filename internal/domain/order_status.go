package domain

type OrderStatus string

const (
	// OrderStatusPending is a reserved entry state. No operation assigns it;
	// it exists so persisted data written by older clients still decodes.
	OrderStatusPending             OrderStatus = "pending"
	OrderStatusPaymentVerification OrderStatus = "payment_verification"
	OrderStatusProcessing          OrderStatus = "processing"
	OrderStatusDelivered           OrderStatus = "delivered"
	OrderStatusCompleted           OrderStatus = "completed"
)

var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:             {OrderStatusPaymentVerification, OrderStatusProcessing},
	OrderStatusPaymentVerification: {OrderStatusProcessing},
	OrderStatusProcessing:          {OrderStatusDelivered},
	OrderStatusDelivered:           {OrderStatusCompleted},
}

// CanTransitionTo reports whether the order lifecycle allows moving
// from one status to another.
func CanTransitionTo(from, to OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}
