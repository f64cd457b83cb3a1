package domain

import "time"

// Payment methods offered at checkout. Cash on delivery skips the
// payment verification stage.
const (
	PaymentMethodCOD       = "cod"
	PaymentMethodCard      = "card"
	PaymentMethodBank      = "bank"
	PaymentMethodPromptPay = "promptpay"
)

type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Order is an immutable snapshot of a completed checkout. Only Status and
// PaymentVerified change after creation; every other field is frozen.
type Order struct {
	ID                string       `json:"id"`
	Items             []LineItem   `json:"items"`
	TotalAmount       float64      `json:"total_amount"`
	DeliveryFee       float64      `json:"delivery_fee"`
	DeliveryAddress   string       `json:"delivery_address"`
	PaymentMethod     string       `json:"payment_method"`
	DeliveryTime      string       `json:"delivery_time"`
	CustomerInfo      CustomerInfo `json:"customer_info"`
	Status            OrderStatus  `json:"status"`
	OrderDate         time.Time    `json:"order_date"`
	EstimatedDelivery time.Time    `json:"estimated_delivery"`
	PaymentVerified   bool         `json:"payment_verified"`
}
