package loyalty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		lifetime int
		want     Tier
	}{
		{0, TierBronze},
		{499, TierBronze},
		{500, TierSilver},
		{1499, TierSilver},
		{1500, TierGold},
		{4999, TierGold},
		{5000, TierPlatinum},
		{100000, TierPlatinum},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.lifetime), "lifetime=%d", tt.lifetime)
	}
}

func TestPointsFor(t *testing.T) {
	tests := []struct {
		name       string
		orderTotal int64 // cents
		tier       Tier
		want       int
	}{
		{"bronze 100.00 order earns 100", 10000, TierBronze, 100},
		{"silver 100.00 order earns 120", 10000, TierSilver, 120},
		{"gold 100.00 order earns 150", 10000, TierGold, 150},
		{"platinum 100.00 order earns 200", 10000, TierPlatinum, 200},
		{"fractional result floors", 9999, TierBronze, 99},
		{"silver floors after multiplier", 9950, TierSilver, 119}, // 99.50 * 1.2 = 119.4
		{"zero order earns nothing", 0, TierBronze, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointsFor(tt.orderTotal, tt.tier))
		})
	}
}

func TestTierNeverDecreases(t *testing.T) {
	// Redemption reduces the spendable balance, not lifetime points, so the
	// tier derived from lifetime points is monotonic in earnings.
	lifetime := 1600
	require.Equal(t, TierGold, TierFor(lifetime))

	// Spending points has no lifetime effect.
	assert.Equal(t, TierGold, TierFor(lifetime))
}

func TestNextLevelProgress(t *testing.T) {
	t.Run("bronze halfway to silver", func(t *testing.T) {
		p := NextLevelProgress(250)
		assert.Equal(t, TierBronze, p.Tier)
		require.NotNil(t, p.NextTier)
		assert.Equal(t, TierSilver, *p.NextTier)
		assert.Equal(t, 500, p.NextThreshold)
		assert.Equal(t, 50, p.Percent)
	})

	t.Run("fresh silver has zero percent", func(t *testing.T) {
		p := NextLevelProgress(500)
		assert.Equal(t, TierSilver, p.Tier)
		assert.Equal(t, 1500, p.NextThreshold)
		assert.Equal(t, 0, p.Percent)
	})

	t.Run("top tier reports 100 with current as target", func(t *testing.T) {
		p := NextLevelProgress(7200)
		assert.Equal(t, TierPlatinum, p.Tier)
		assert.Nil(t, p.NextTier)
		assert.Equal(t, 7200, p.NextThreshold)
		assert.Equal(t, 100, p.Percent)
	})
}

func TestSilverCreditAfterCrossingThreshold(t *testing.T) {
	// A customer with 450 lifetime points is bronze; a 100.00 order credits
	// 100 points. The next 100.00 order is credited at the silver multiplier.
	lifetime := 450

	first := PointsFor(10000, TierFor(lifetime))
	require.Equal(t, 100, first)
	lifetime += first

	require.Equal(t, TierSilver, TierFor(lifetime))
	second := PointsFor(10000, TierFor(lifetime))
	assert.Equal(t, 120, second)
}

func TestDefaultRewards(t *testing.T) {
	rewards := DefaultRewards()
	require.NotEmpty(t, rewards)
	for _, r := range rewards {
		assert.NotEmpty(t, r.ID)
		assert.Positive(t, r.Cost)
	}
}
