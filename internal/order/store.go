package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fjod/go_rental/internal/domain"
	"github.com/fjod/go_rental/internal/storage"
	"github.com/google/uuid"
)

// ErrIllegalTransition is returned by UpdateStatus when the requested
// status is not reachable from the order's current status.
var ErrIllegalTransition = errors.New("illegal transition of order status")

// estimatedDeliveryAfter is how far ahead of the order date delivery
// is promised.
const estimatedDeliveryAfter = 3 * 24 * time.Hour

// CreateParams carries everything an order freezes at creation time.
// Monetary fields arrive pre-computed; the store performs no validation
// of them.
type CreateParams struct {
	Snapshot        domain.CartSnapshot
	Subtotal        float64
	DeliveryFee     float64
	DeliveryAddress string
	PaymentMethod   string
	DeliveryTime    string
	Customer        domain.CustomerInfo
}

// Store owns the order collection, newest first. Every mutation rewrites
// the whole collection to durable storage.
type Store struct {
	kv     storage.Store
	orders []domain.Order
}

// New restores the order collection from storage. Missing record → empty
// collection; corrupt record → empty collection plus a wrapped
// storage.ErrCorruptRecord so the reset is observable.
func New(ctx context.Context, kv storage.Store) (*Store, error) {
	s := &Store{kv: kv}

	data, err := kv.Get(ctx, storage.KeyOrders)
	if errors.Is(err, storage.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		log.Printf("orders restore failed, starting empty: %v", err)
		return s, nil
	}

	var orders []domain.Order
	if err := storage.UnmarshalRecord(data, &orders); err != nil {
		return s, fmt.Errorf("orders reset to empty: %w", err)
	}
	s.orders = orders
	return s, nil
}

// Create builds an order from a cart snapshot and prepends it to the
// collection. Cash on delivery goes straight to processing with payment
// verified; every other method waits in payment verification.
func (s *Store) Create(ctx context.Context, params CreateParams) (*domain.Order, error) {
	now := time.Now()

	status := domain.OrderStatusPaymentVerification
	verified := false
	if params.PaymentMethod == domain.PaymentMethodCOD {
		status = domain.OrderStatusProcessing
		verified = true
	}

	items := make([]domain.LineItem, len(params.Snapshot.Items))
	copy(items, params.Snapshot.Items)

	newOrder := domain.Order{
		ID:                fmt.Sprintf("ORD-%s", uuid.NewString()),
		Items:             items,
		TotalAmount:       params.Subtotal,
		DeliveryFee:       params.DeliveryFee,
		DeliveryAddress:   params.DeliveryAddress,
		PaymentMethod:     params.PaymentMethod,
		DeliveryTime:      params.DeliveryTime,
		CustomerInfo:      params.Customer,
		Status:            status,
		OrderDate:         now,
		EstimatedDelivery: now.Add(estimatedDeliveryAfter),
		PaymentVerified:   verified,
	}

	s.orders = append([]domain.Order{newOrder}, s.orders...)
	s.persist(ctx)
	return &newOrder, nil
}

// UpdateStatus moves an order to the given status. An unknown id is a
// silent no-op; a status not reachable from the current one is rejected.
func (s *Store) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	for i := range s.orders {
		if s.orders[i].ID != id {
			continue
		}
		if !domain.CanTransitionTo(s.orders[i].Status, status) {
			return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s.orders[i].Status, status)
		}
		s.orders[i].Status = status
		s.persist(ctx)
		return nil
	}
	return nil
}

// VerifyPayment marks the order's payment as verified and moves it to
// processing, regardless of its current status or payment method.
// Unknown ids are a no-op.
func (s *Store) VerifyPayment(ctx context.Context, id string) {
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = domain.OrderStatusProcessing
			s.orders[i].PaymentVerified = true
			s.persist(ctx)
			return
		}
	}
}

func (s *Store) GetByID(id string) (*domain.Order, bool) {
	for i := range s.orders {
		if s.orders[i].ID == id {
			found := s.orders[i]
			return &found, true
		}
	}
	return nil, false
}

// All returns a copy of the collection, newest first.
func (s *Store) All() []domain.Order {
	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *Store) persist(ctx context.Context) {
	data, err := storage.MarshalRecord(s.orders)
	if err != nil {
		log.Printf("orders marshal error: %v", err)
		return
	}
	if err := s.kv.Set(ctx, storage.KeyOrders, data); err != nil {
		log.Printf("orders persist error: %v", err)
	}
}
