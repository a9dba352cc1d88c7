package coupon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountFor(t *testing.T) {
	tests := []struct {
		name     string
		coupon   Coupon
		subtotal int64
		want     int64
	}{
		{"plain percentage", Coupon{DiscountPct: 10}, 5000, 500},
		{"rounds down to cent", Coupon{DiscountPct: 10}, 4999, 499},
		{"cap not reached", Coupon{DiscountPct: 15, MaxDiscount: 2000}, 8000, 1200},
		{"capped at max discount", Coupon{DiscountPct: 15, MaxDiscount: 2000}, 20000, 2000},
		{"exactly at cap", Coupon{DiscountPct: 25, MaxDiscount: 5000}, 20000, 5000},
		{"zero subtotal", Coupon{DiscountPct: 10}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.coupon.DiscountFor(tt.subtotal))
		})
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "BEMVINDO10", NormalizeCode("  bemvindo10 "))
	assert.Equal(t, "VIP25", NormalizeCode("Vip25"))
}

func TestRegistryValidate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	expired := now.Add(-time.Hour)
	future := now.Add(24 * time.Hour)

	registry := NewRegistry([]Coupon{
		{Code: "BEMVINDO10", DiscountPct: 10, MinOrderValue: 5000},
		{Code: "VELHO5", DiscountPct: 5, ExpiresAt: &expired},
		{Code: "JUNHO20", DiscountPct: 20, ExpiresAt: &future},
	})

	noneUsed := func(string) bool { return false }

	t.Run("unknown code", func(t *testing.T) {
		_, err := registry.Validate("NADA", 10000, noneUsed, now)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("case-insensitive and trimmed", func(t *testing.T) {
		c, err := registry.Validate(" bemvindo10 ", 10000, noneUsed, now)
		require.NoError(t, err)
		assert.Equal(t, "BEMVINDO10", c.Code)
	})

	t.Run("minimum met exactly", func(t *testing.T) {
		c, err := registry.Validate("BEMVINDO10", 5000, noneUsed, now)
		require.NoError(t, err)
		assert.Equal(t, 10, c.DiscountPct)
	})

	t.Run("one cent below minimum", func(t *testing.T) {
		_, err := registry.Validate("BEMVINDO10", 4999, noneUsed, now)
		require.ErrorIs(t, err, ErrMinOrderNotMet)
		assert.Contains(t, err.Error(), "minimum order")
	})

	t.Run("already used", func(t *testing.T) {
		used := func(code string) bool { return code == "BEMVINDO10" }
		_, err := registry.Validate("BEMVINDO10", 10000, used, now)
		require.ErrorIs(t, err, ErrAlreadyUsed)
	})

	t.Run("expired", func(t *testing.T) {
		_, err := registry.Validate("VELHO5", 10000, noneUsed, now)
		require.ErrorIs(t, err, ErrExpired)
	})

	t.Run("not yet expired", func(t *testing.T) {
		_, err := registry.Validate("JUNHO20", 10000, noneUsed, now)
		require.NoError(t, err)
	})
}

func TestSessionStateIsUsed(t *testing.T) {
	state := &SessionState{Used: []string{"BEMVINDO10"}}
	assert.True(t, state.isUsed("BEMVINDO10"))
	assert.False(t, state.isUsed("VIP25"))
}

func TestDefaultCoupons(t *testing.T) {
	registry := NewRegistry(DefaultCoupons())

	c, ok := registry.Get("BEMVINDO10")
	require.True(t, ok)
	assert.Equal(t, 10, c.DiscountPct)
	assert.Equal(t, int64(5000), c.MinOrderValue)
}
