package checkout

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fjod/go_rental/internal/cart"
	"github.com/fjod/go_rental/internal/domain"
	"github.com/fjod/go_rental/internal/order"
	"github.com/fjod/go_rental/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCart struct {
	items   []domain.LineItem
	cleared bool
}

func (m *mockCart) Snapshot() domain.CartSnapshot {
	items := make([]domain.LineItem, len(m.items))
	copy(items, m.items)
	return domain.CartSnapshot{Items: items, CapturedAt: time.Now()}
}

func (m *mockCart) Clear(context.Context) {
	m.items = nil
	m.cleared = true
}

type mockOrders struct {
	created *order.CreateParams
	err     error
}

func (m *mockOrders) Create(_ context.Context, params order.CreateParams) (*domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = &params
	return &domain.Order{ID: "ORD-test", Items: params.Snapshot.Items, TotalAmount: params.Subtotal}, nil
}

func validRequest(paymentMethod string) PlaceOrderRequest {
	return PlaceOrderRequest{
		DeliveryAddress: "12 Sukhumvit Rd, Bangkok, 10110",
		DeliveryTime:    "13:00 - 15:00",
		PaymentMethod:   paymentMethod,
		Customer:        domain.CustomerInfo{Name: "Ann Tester", Email: "ann@example.com", Phone: "0812345678"},
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	mockC := &mockCart{items: []domain.LineItem{{ID: 1, Price: 1500, Quantity: 1, Days: 2}}}
	mockO := &mockOrders{}

	sut := NewService(mockC, mockO)
	created, err := sut.PlaceOrder(context.Background(), validRequest(domain.PaymentMethodCard))
	require.NoError(t, err)
	assert.Equal(t, "ORD-test", created.ID)
	assert.True(t, mockC.cleared, "cart must be cleared after a successful checkout")

	require.NotNil(t, mockO.created)
	assert.Equal(t, 3000.0, mockO.created.Subtotal)
	assert.Equal(t, 500.0, mockO.created.DeliveryFee)
	assert.Equal(t, domain.PaymentMethodCard, mockO.created.PaymentMethod)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	sut := NewService(&mockCart{}, &mockOrders{})

	_, err := sut.PlaceOrder(context.Background(), validRequest(domain.PaymentMethodCOD))
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrder_MissingFields(t *testing.T) {
	mockC := &mockCart{items: []domain.LineItem{{ID: 1, Price: 100, Quantity: 1, Days: 1}}}
	sut := NewService(mockC, &mockOrders{})
	ctx := context.Background()

	noTime := validRequest(domain.PaymentMethodCOD)
	noTime.DeliveryTime = ""
	_, err := sut.PlaceOrder(ctx, noTime)
	assert.ErrorIs(t, err, ErrIncompleteCheckout)

	noMethod := validRequest("")
	_, err = sut.PlaceOrder(ctx, noMethod)
	assert.ErrorIs(t, err, ErrIncompleteCheckout)

	noAddress := validRequest(domain.PaymentMethodCOD)
	noAddress.DeliveryAddress = ""
	_, err = sut.PlaceOrder(ctx, noAddress)
	assert.ErrorIs(t, err, ErrIncompleteCheckout)

	assert.False(t, mockC.cleared, "failed validation must not touch the cart")
}

func TestPlaceOrder_CreateFails_CartUntouched(t *testing.T) {
	mockC := &mockCart{items: []domain.LineItem{{ID: 1, Price: 1500, Quantity: 1, Days: 2}}}
	mockO := &mockOrders{err: fmt.Errorf("storage unavailable")}

	sut := NewService(mockC, mockO)
	_, err := sut.PlaceOrder(context.Background(), validRequest(domain.PaymentMethodCard))
	require.ErrorContains(t, err, "storage unavailable")
	assert.False(t, mockC.cleared)
	assert.Len(t, mockC.items, 1)
}

func TestPlaceOrder_InvalidLineItem(t *testing.T) {
	mockC := &mockCart{items: []domain.LineItem{{ID: 1, Price: 1500, Quantity: 0, Days: 2}}}
	sut := NewService(mockC, &mockOrders{})

	_, err := sut.PlaceOrder(context.Background(), validRequest(domain.PaymentMethodCard))
	require.Error(t, err)
	assert.False(t, mockC.cleared)
}

func TestPlaceOrder_ConfirmDelayHonorsContext(t *testing.T) {
	mockC := &mockCart{items: []domain.LineItem{{ID: 1, Price: 100, Quantity: 1, Days: 1}}}
	sut := NewService(mockC, &mockOrders{}, WithConfirmDelay(10*time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	created, err := sut.PlaceOrder(ctx, validRequest(domain.PaymentMethodCOD))
	require.NoError(t, err)
	assert.NotNil(t, created)
	assert.True(t, mockC.cleared, "state is committed before the delay")
	assert.Less(t, time.Since(start), 5*time.Second)
}

// End-to-end checkout over real stores sharing one storage backend.
func setupSession(t *testing.T) (*cart.Store, *order.Store, *Service) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()

	cartStore, err := cart.New(ctx, kv)
	require.NoError(t, err)
	orderStore, err := order.New(ctx, kv)
	require.NoError(t, err)

	return cartStore, orderStore, NewService(cartStore, orderStore)
}

func TestCheckout_CardScenario(t *testing.T) {
	cartStore, orderStore, sut := setupSession(t)
	ctx := context.Background()

	cartStore.AddItem(ctx, domain.Product{ID: 1, Name: "Cordless Drill", Price: 1500})
	require.NoError(t, cartStore.UpdateDays(ctx, 1, 2))

	created, err := sut.PlaceOrder(ctx, validRequest(domain.PaymentMethodCard))
	require.NoError(t, err)

	assert.Equal(t, 3000.0, created.TotalAmount)
	assert.Equal(t, domain.OrderStatusPaymentVerification, created.Status)
	assert.False(t, created.PaymentVerified)
	assert.Empty(t, cartStore.Items(), "cart must be empty after checkout")

	stored, ok := orderStore.GetByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, created.ID, stored.ID)
}

func TestCheckout_CashOnDeliveryScenario(t *testing.T) {
	cartStore, _, sut := setupSession(t)
	ctx := context.Background()

	cartStore.AddItem(ctx, domain.Product{ID: 1, Name: "Cordless Drill", Price: 1500})
	require.NoError(t, cartStore.UpdateDays(ctx, 1, 2))

	created, err := sut.PlaceOrder(ctx, validRequest(domain.PaymentMethodCOD))
	require.NoError(t, err)

	assert.Equal(t, 3000.0, created.TotalAmount)
	assert.Equal(t, domain.OrderStatusProcessing, created.Status)
	assert.True(t, created.PaymentVerified)
	assert.Empty(t, cartStore.Items())
}
