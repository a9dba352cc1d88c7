// internal/domain/loyalty/entity.go
package loyalty

import (
	"math"
	"time"
)

// Tier represents a loyalty level
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// tierThresholds lists tiers ascending by lifetime points required
var tierThresholds = []struct {
	Tier       Tier
	MinPoints  int
	Multiplier float64
}{
	{TierBronze, 0, 1.0},
	{TierSilver, 500, 1.2},
	{TierGold, 1500, 1.5},
	{TierPlatinum, 5000, 2.0},
}

// TierFor returns the tier for a lifetime point total. The tier depends only
// on cumulative earned points, so it never decreases.
func TierFor(lifetimePoints int) Tier {
	tier := TierBronze
	for _, t := range tierThresholds {
		if lifetimePoints >= t.MinPoints {
			tier = t.Tier
		}
	}
	return tier
}

// Multiplier returns the earn multiplier for a tier
func Multiplier(tier Tier) float64 {
	for _, t := range tierThresholds {
		if t.Tier == tier {
			return t.Multiplier
		}
	}
	return 1.0
}

// PointsFor returns the points earned for an order total (in cents) at the
// given tier: floor(order amount in currency units × multiplier).
func PointsFor(orderTotal int64, tier Tier) int {
	return int(math.Floor(float64(orderTotal) / 100 * Multiplier(tier)))
}

// Progress describes how far a customer is toward the next tier
type Progress struct {
	Tier          Tier  `json:"tier"`
	NextTier      *Tier `json:"next_tier,omitempty"`
	CurrentPoints int   `json:"current_points"`
	NextThreshold int   `json:"next_threshold"`
	Percent       int   `json:"percent"`
}

// NextLevelProgress computes progress toward the next tier. At the top tier
// it reports 100% with the current total as its own target.
func NextLevelProgress(lifetimePoints int) Progress {
	current := TierFor(lifetimePoints)

	for i, t := range tierThresholds {
		if t.Tier != current {
			continue
		}
		if i == len(tierThresholds)-1 {
			return Progress{
				Tier:          current,
				CurrentPoints: lifetimePoints,
				NextThreshold: lifetimePoints,
				Percent:       100,
			}
		}

		next := tierThresholds[i+1]
		span := next.MinPoints - t.MinPoints
		pct := (lifetimePoints - t.MinPoints) * 100 / span
		if pct > 100 {
			pct = 100
		}
		nextTier := next.Tier
		return Progress{
			Tier:          current,
			NextTier:      &nextTier,
			CurrentPoints: lifetimePoints,
			NextThreshold: next.MinPoints,
			Percent:       pct,
		}
	}

	return Progress{Tier: current, CurrentPoints: lifetimePoints, Percent: 0}
}

// Reward represents a fixed-cost redemption option
type Reward struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        int    `json:"cost"` // points
}

// DefaultRewards returns the compiled-in reward catalog
func DefaultRewards() []Reward {
	return []Reward{
		{ID: "sobremesa", Name: "Sobremesa grátis", Description: "Qualquer sobremesa do cardápio", Cost: 150},
		{ID: "refrigerante", Name: "Refrigerante grátis", Description: "Lata 350ml", Cost: 80},
		{ID: "entrega", Name: "Entrega grátis", Description: "Taxa de entrega por nossa conta", Cost: 100},
		{ID: "burger", Name: "Burger clássico grátis", Description: "Um X-Burger da casa", Cost: 400},
	}
}

// Entry is an append-only loyalty history record
type Entry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CustomerID  uint      `gorm:"not null;index" json:"customer_id"`
	Kind        string    `gorm:"not null;size:20" json:"kind"` // earned, redeemed
	Points      int       `gorm:"not null" json:"points"`
	Description string    `gorm:"size:255" json:"description"`
	OrderID     *uint     `gorm:"index" json:"order_id,omitempty"`
	RewardID    string    `gorm:"size:50" json:"reward_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Entry) TableName() string {
	return "loyalty_entries"
}
