package cart

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fjod/go_rental/internal/domain"
	"github.com/fjod/go_rental/internal/storage"
)

var ErrInvalidQuantity = errors.New("quantity and days must be at least 1")

// Store holds the line items of the active session. Item order is insertion
// order; product ids are unique within the cart. Every mutation rewrites the
// full cart to durable storage.
type Store struct {
	kv        storage.Store
	items     []domain.LineItem
	increment int
}

type Option func(*Store)

// WithIncrement sets how much AddItem raises the quantity of an item
// already in the cart. Defaults to 1.
func WithIncrement(n int) Option {
	return func(s *Store) {
		if n >= 1 {
			s.increment = n
		}
	}
}

// New restores the cart from storage. A missing record yields an empty cart.
// A corrupt record also yields an empty, usable cart, but the returned error
// wraps storage.ErrCorruptRecord so the caller can observe the reset.
func New(ctx context.Context, kv storage.Store, opts ...Option) (*Store, error) {
	s := &Store{kv: kv, increment: 1}
	for _, opt := range opts {
		opt(s)
	}

	data, err := kv.Get(ctx, storage.KeyCart)
	if errors.Is(err, storage.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		log.Printf("cart restore failed, starting empty: %v", err)
		return s, nil
	}

	var items []domain.LineItem
	if err := storage.UnmarshalRecord(data, &items); err != nil {
		return s, fmt.Errorf("cart reset to empty: %w", err)
	}
	s.items = items
	return s, nil
}

// AddItem merges the product into the cart: an existing line gains quantity,
// a new product enters with quantity 1 for a single rental day. Stock limits
// are a caller concern; the cart does not validate them.
func (s *Store) AddItem(ctx context.Context, product domain.Product) {
	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity += s.increment
			s.persist(ctx)
			return
		}
	}

	s.items = append(s.items, domain.LineItem{
		ID:       product.ID,
		Name:     product.Name,
		Brand:    product.Brand,
		ImageRef: product.ImageRef,
		Price:    product.Price,
		Quantity: 1,
		Days:     1,
	})
	s.persist(ctx)
}

func (s *Store) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			s.persist(ctx)
			return nil
		}
	}
	return nil
}

func (s *Store) UpdateDays(ctx context.Context, id int64, days int) error {
	if days < 1 {
		return ErrInvalidQuantity
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Days = days
			s.persist(ctx)
			return nil
		}
	}
	return nil
}

// RemoveItem is idempotent: removing a missing id is a no-op.
func (s *Store) RemoveItem(ctx context.Context, id int64) {
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

func (s *Store) Clear(ctx context.Context) {
	s.items = nil
	s.persist(ctx)
}

// Items returns a copy of the current line items in insertion order.
func (s *Store) Items() []domain.LineItem {
	out := make([]domain.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems is the sum of quantities across all line items.
func (s *Store) TotalItems() int {
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// Snapshot returns an immutable copy of the cart for order creation,
// decoupled from further cart mutation.
func (s *Store) Snapshot() domain.CartSnapshot {
	return domain.CartSnapshot{
		Items:      s.Items(),
		CapturedAt: time.Now(),
	}
}

// Storage failures are absorbed here: the in-memory cart stays authoritative
// for the session and the write error is only logged.
func (s *Store) persist(ctx context.Context) {
	data, err := storage.MarshalRecord(s.items)
	if err != nil {
		log.Printf("cart marshal error: %v", err)
		return
	}
	if err := s.kv.Set(ctx, storage.KeyCart, data); err != nil {
		log.Printf("cart persist error: %v", err)
	}
}
