// internal/domain/cart/entity.go
package cart

import (
	"fmt"
	"time"

	"github.com/your-org/restaurant-backend/internal/domain/product"
)

// SessionCart represents a customer's cart (stored in Redis, keyed by session)
type SessionCart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// CartItem represents a single line in the cart. Name and UnitPrice are
// snapshots taken when the item was added, so later catalog edits do not
// change what the customer agreed to pay.
type CartItem struct {
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	Notes     string    `json:"notes,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}

// CartTotals represents calculated cart totals
type CartTotals struct {
	ItemCount     int   `json:"item_count"`     // Number of unique items
	TotalQuantity int   `json:"total_quantity"` // Sum of all quantities
	Subtotal      int64 `json:"subtotal"`
	DeliveryFee   int64 `json:"delivery_fee"`
	Total         int64 `json:"total"`
}

// maxAddable returns how many more units of a product fit under its stock
// ceiling given what is already in the cart. Unlimited stock never clamps.
func maxAddable(prod *product.Product, inCart, requested int) int {
	room := prod.StockCeiling(inCart+requested) - inCart
	if room < 0 {
		room = 0
	}
	if requested < room {
		return requested
	}
	return room
}

// Add merges quantity into an existing line or appends a new one, clamping to
// the product's stock ceiling. It returns the quantity actually added; zero
// with an error when the ceiling is already reached.
func (sc *SessionCart) Add(prod *product.Product, quantity int, notes string) (int, error) {
	if quantity < 1 {
		return 0, fmt.Errorf("quantity must be at least 1")
	}

	for i := range sc.Items {
		if sc.Items[i].ProductID == prod.ID {
			added := maxAddable(prod, sc.Items[i].Quantity, quantity)
			if added == 0 {
				return 0, fmt.Errorf("cannot add more '%s': only %d in stock", prod.Name, prod.Stock)
			}
			sc.Items[i].Quantity += added
			if notes != "" {
				sc.Items[i].Notes = notes
			}
			sc.UpdatedAt = time.Now().UTC()
			return added, nil
		}
	}

	added := maxAddable(prod, 0, quantity)
	if added == 0 {
		return 0, fmt.Errorf("'%s' is out of stock", prod.Name)
	}

	sc.Items = append(sc.Items, CartItem{
		ProductID: prod.ID,
		Name:      prod.Name,
		UnitPrice: prod.Price,
		Quantity:  added,
		Notes:     notes,
		AddedAt:   time.Now().UTC(),
	})
	sc.UpdatedAt = time.Now().UTC()
	return added, nil
}

// UpdateQuantity replaces a line's quantity. Zero or negative removes the
// line; exceeding the stock ceiling fails with an explicit message.
func (sc *SessionCart) UpdateQuantity(prod *product.Product, quantity int) error {
	idx := sc.indexOf(prod.ID)
	if idx < 0 {
		return fmt.Errorf("item not found in cart")
	}

	if quantity <= 0 {
		sc.Items = append(sc.Items[:idx], sc.Items[idx+1:]...)
		sc.UpdatedAt = time.Now().UTC()
		return nil
	}

	if quantity > prod.StockCeiling(quantity) {
		return fmt.Errorf("only %d units of '%s' in stock", prod.Stock, prod.Name)
	}

	sc.Items[idx].Quantity = quantity
	sc.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateNotes replaces the free-text note on a line
func (sc *SessionCart) UpdateNotes(productID uint, notes string) error {
	idx := sc.indexOf(productID)
	if idx < 0 {
		return fmt.Errorf("item not found in cart")
	}
	sc.Items[idx].Notes = notes
	sc.UpdatedAt = time.Now().UTC()
	return nil
}

// Remove deletes a line from the cart
func (sc *SessionCart) Remove(productID uint) error {
	idx := sc.indexOf(productID)
	if idx < 0 {
		return fmt.Errorf("item not found in cart")
	}
	sc.Items = append(sc.Items[:idx], sc.Items[idx+1:]...)
	sc.UpdatedAt = time.Now().UTC()
	return nil
}

// Clear removes all lines
func (sc *SessionCart) Clear() {
	sc.Items = nil
	sc.UpdatedAt = time.Now().UTC()
}

// Totals computes subtotal, delivery fee and total. Delivery is free once the
// subtotal reaches freeDeliveryMin. Coupon discounts are applied by the
// caller, never here.
func (sc *SessionCart) Totals(deliveryFee, freeDeliveryMin int64) CartTotals {
	var totals CartTotals
	totals.ItemCount = len(sc.Items)

	for _, item := range sc.Items {
		totals.TotalQuantity += item.Quantity
		totals.Subtotal += item.UnitPrice * int64(item.Quantity)
	}

	if totals.Subtotal > 0 && totals.Subtotal < freeDeliveryMin {
		totals.DeliveryFee = deliveryFee
	}
	totals.Total = totals.Subtotal + totals.DeliveryFee

	return totals
}

func (sc *SessionCart) indexOf(productID uint) int {
	for i := range sc.Items {
		if sc.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
