// internal/domain/coupon/entity.go
package coupon

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation errors, one per user-facing rejection reason
var (
	ErrNotFound       = errors.New("coupon not found")
	ErrAlreadyUsed    = errors.New("coupon has already been used")
	ErrExpired        = errors.New("coupon has expired")
	ErrMinOrderNotMet = errors.New("order total below coupon minimum")
)

// Coupon represents a percentage discount code
type Coupon struct {
	Code          string     `json:"code"`
	Description   string     `json:"description"`
	DiscountPct   int        `json:"discount_pct"`
	MinOrderValue int64      `json:"min_order_value"` // cents, 0 means no minimum
	MaxDiscount   int64      `json:"max_discount"`    // cents, 0 means uncapped
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// DiscountFor returns the discount in cents for a subtotal, capped at
// MaxDiscount when one is set.
func (c *Coupon) DiscountFor(subtotal int64) int64 {
	discount := subtotal * int64(c.DiscountPct) / 100
	if c.MaxDiscount > 0 && discount > c.MaxDiscount {
		discount = c.MaxDiscount
	}
	return discount
}

// NormalizeCode uppercases and trims a user-entered code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Registry holds the coupon table. It is constructed at startup and injected
// into the service so tests can use isolated instances.
type Registry struct {
	coupons map[string]*Coupon
}

// NewRegistry creates a registry from a coupon list
func NewRegistry(coupons []Coupon) *Registry {
	r := &Registry{coupons: make(map[string]*Coupon, len(coupons))}
	for i := range coupons {
		c := coupons[i]
		c.Code = NormalizeCode(c.Code)
		r.coupons[c.Code] = &c
	}
	return r
}

// Get looks up a coupon by normalized code
func (r *Registry) Get(code string) (*Coupon, bool) {
	c, ok := r.coupons[NormalizeCode(code)]
	return c, ok
}

// All returns every registered coupon
func (r *Registry) All() []Coupon {
	out := make([]Coupon, 0, len(r.coupons))
	for _, c := range r.coupons {
		out = append(out, *c)
	}
	return out
}

// Validate checks a code against the registry for a given order total.
// isUsed reports whether the session has already spent the code.
func (r *Registry) Validate(code string, orderTotal int64, isUsed func(string) bool, now time.Time) (*Coupon, error) {
	c, ok := r.Get(code)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, NormalizeCode(code))
	}

	if isUsed != nil && isUsed(c.Code) {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyUsed, c.Code)
	}

	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return nil, fmt.Errorf("%w: %s", ErrExpired, c.Code)
	}

	if c.MinOrderValue > 0 && orderTotal < c.MinOrderValue {
		return nil, fmt.Errorf("%w: minimum order of R$%.2f required",
			ErrMinOrderNotMet, float64(c.MinOrderValue)/100)
	}

	return c, nil
}

// DefaultCoupons returns the compiled-in coupon table
func DefaultCoupons() []Coupon {
	return []Coupon{
		{
			Code:          "BEMVINDO10",
			Description:   "10% de desconto na primeira compra",
			DiscountPct:   10,
			MinOrderValue: 5000, // R$50.00
		},
		{
			Code:          "SABOR15",
			Description:   "15% de desconto",
			DiscountPct:   15,
			MinOrderValue: 8000, // R$80.00
			MaxDiscount:   2000, // capped at R$20.00
		},
		{
			Code:          "VIP25",
			Description:   "25% de desconto para clientes VIP",
			DiscountPct:   25,
			MinOrderValue: 15000, // R$150.00
			MaxDiscount:   5000,  // capped at R$50.00
		},
	}
}
