package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/restaurant-backend/internal/domain/cart"
)

func TestCanTransition_HappyPath(t *testing.T) {
	path := []OrderStatus{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusPreparing,
		OrderStatusReady,
		OrderStatusDelivering,
		OrderStatusDelivered,
	}

	for i := 0; i < len(path)-1; i++ {
		assert.True(t, CanTransition(path[i], path[i+1]), "%s -> %s", path[i], path[i+1])
	}
}

func TestCanTransition_CancelledFromNonTerminalOnly(t *testing.T) {
	nonTerminal := []OrderStatus{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusPreparing,
		OrderStatusReady,
		OrderStatusDelivering,
	}
	for _, from := range nonTerminal {
		assert.True(t, CanTransition(from, OrderStatusCancelled), "%s -> cancelled", from)
	}

	assert.False(t, CanTransition(OrderStatusDelivered, OrderStatusCancelled))
	assert.False(t, CanTransition(OrderStatusCancelled, OrderStatusCancelled))
}

func TestValidateTransition_RejectsOutOfOrderWrites(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
	}{
		{OrderStatusDelivered, OrderStatusPreparing}, // reversal out of terminal
		{OrderStatusPending, OrderStatusDelivered},   // skipping ahead
		{OrderStatusCancelled, OrderStatusConfirmed}, // out of absorbing state
		{OrderStatusReady, OrderStatusConfirmed},     // backwards
	}

	for _, tt := range tests {
		err := ValidateTransition(tt.from, tt.to)
		require.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", tt.from, tt.to)
	}
}

func TestValidateTransition_RejectsUnknownStatus(t *testing.T) {
	err := ValidateTransition(OrderStatusPending, OrderStatus("shipped"))
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, err.Error(), "shipped")
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusDelivering.IsTerminal())
}

func TestGenerateOrderNumber(t *testing.T) {
	at := time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "ORD-20250314-00042", GenerateOrderNumber(42, at))
	assert.Equal(t, "ORD-20250314-12345", GenerateOrderNumber(12345, at))
}

func TestNewOrderSnapshot(t *testing.T) {
	now := time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)
	req := &CreateOrderRequest{
		CustomerName:  "Ana Souza",
		CustomerPhone: "(11) 98765-4321",
		PaymentMethod: "pix",
	}

	tests := []struct {
		name       string
		totals     cart.CartTotals
		couponCode string
		discount   int64
		wantTotal  int64
	}{
		{
			name:      "no discount, paid delivery",
			totals:    cart.CartTotals{Subtotal: 4500, DeliveryFee: 500},
			wantTotal: 5000,
		},
		{
			name:       "coupon discount over free delivery",
			totals:     cart.CartTotals{Subtotal: 13500, DeliveryFee: 0},
			couponCode: "SABOR15",
			discount:   1350,
			wantTotal:  12150,
		},
		{
			name:       "discount capped below subtotal",
			totals:     cart.CartTotals{Subtotal: 30000, DeliveryFee: 0},
			couponCode: "VIP25",
			discount:   3000,
			wantTotal:  27000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOrderSnapshot(req, tt.totals, tt.couponCode, tt.discount, now, 45*time.Minute)

			assert.Equal(t, OrderStatusPending, o.Status)
			require.NotNil(t, o.EstimatedDelivery)
			assert.Equal(t, o.CreatedAt.Add(45*time.Minute), *o.EstimatedDelivery)

			assert.Equal(t, tt.totals.Subtotal, o.Subtotal)
			assert.Equal(t, tt.totals.DeliveryFee, o.DeliveryFee)
			assert.Equal(t, tt.discount, o.Discount)
			assert.Equal(t, tt.wantTotal, o.Total)
			assert.Equal(t, o.Subtotal+o.DeliveryFee-o.Discount, o.Total)

			assert.Equal(t, tt.couponCode, o.CouponCode)
			assert.Equal(t, "11987654321", o.CustomerPhone)
		})
	}
}

func TestNewOrderSnapshot_FormattedTotal(t *testing.T) {
	now := time.Now().UTC()
	o := newOrderSnapshot(&CreateOrderRequest{CustomerPhone: "11 9 8765-4321"},
		cart.CartTotals{Subtotal: 13500}, "SABOR15", 1350, now, 45*time.Minute)
	assert.InDelta(t, 121.50, o.GetFormattedTotal(), 0.001)
}

func TestTrackedLines(t *testing.T) {
	items := []OrderItem{
		{ProductID: 1, Quantity: 2, StockTracked: true},
		{ProductID: 2, Quantity: 1, StockTracked: false},
		{ProductID: 3, Quantity: 4, StockTracked: true},
	}

	lines := trackedLines(items)
	require.Len(t, lines, 2)
	assert.Equal(t, uint(1), lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, uint(3), lines[1].ProductID)
	assert.Equal(t, 4, lines[1].Quantity)
}

func TestCanBeCancelled(t *testing.T) {
	assert.True(t, (&Order{Status: OrderStatusPending}).CanBeCancelled())
	assert.True(t, (&Order{Status: OrderStatusDelivering}).CanBeCancelled())
	assert.False(t, (&Order{Status: OrderStatusDelivered}).CanBeCancelled())
	assert.False(t, (&Order{Status: OrderStatusCancelled}).CanBeCancelled())
}
