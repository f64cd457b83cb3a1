package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/fjod/go_rental/internal/domain"
	"github.com/fjod/go_rental/internal/order"
	"github.com/fjod/go_rental/internal/pricing"
)

// CartStore is the slice of the cart the orchestrator needs.
// Consumers define this interface, not the cart implementation.
type CartStore interface {
	Snapshot() domain.CartSnapshot
	Clear(ctx context.Context)
}

// OrderStore creates orders from checkout data.
type OrderStore interface {
	Create(ctx context.Context, params order.CreateParams) (*domain.Order, error)
}

// PlaceOrderRequest carries the checkout fields collected from the customer.
type PlaceOrderRequest struct {
	DeliveryAddress string
	DeliveryTime    string
	PaymentMethod   string
	Customer        domain.CustomerInfo
}

// Service sequences a checkout. It is the only place that couples the cart
// and order stores; neither store calls the other directly.
type Service struct {
	cart         CartStore
	orders       OrderStore
	confirmDelay time.Duration
}

type Option func(*Service)

// WithConfirmDelay gates the return of PlaceOrder for the given duration
// after the order is committed, to model storefront confirmation latency.
// State is fully committed before the delay starts.
func WithConfirmDelay(d time.Duration) Option {
	return func(s *Service) {
		s.confirmDelay = d
	}
}

func NewService(cart CartStore, orders OrderStore, opts ...Option) *Service {
	s := &Service{cart: cart, orders: orders}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceOrder snapshots the cart, derives the subtotal, creates the order and
// clears the cart. If order creation fails the cart is left untouched, so a
// failed checkout degrades to the pre-checkout state.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*domain.Order, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	snapshot := s.cart.Snapshot()
	if len(snapshot.Items) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal, err := pricing.Subtotal(snapshot.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to compute subtotal: %w", err)
	}

	created, err := s.orders.Create(ctx, order.CreateParams{
		Snapshot:        snapshot,
		Subtotal:        subtotal,
		DeliveryFee:     pricing.DeliveryFee,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
		DeliveryTime:    req.DeliveryTime,
		Customer:        req.Customer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.cart.Clear(ctx)

	if s.confirmDelay > 0 {
		select {
		case <-time.After(s.confirmDelay):
		case <-ctx.Done():
		}
	}

	return created, nil
}

func validate(req PlaceOrderRequest) error {
	if req.DeliveryTime == "" {
		return fmt.Errorf("%w: delivery time not selected", ErrIncompleteCheckout)
	}
	if req.PaymentMethod == "" {
		return fmt.Errorf("%w: payment method not selected", ErrIncompleteCheckout)
	}
	if req.DeliveryAddress == "" {
		return fmt.Errorf("%w: delivery address is required", ErrIncompleteCheckout)
	}
	return nil
}
