// internal/domain/order/entity.go
package order

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusPreparing  OrderStatus = "preparing"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusDelivering OrderStatus = "delivering"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ErrInvalidTransition is returned when a status write would skip or reverse
// the order lifecycle.
var ErrInvalidTransition = errors.New("invalid status transition")

// validTransitions is the lifecycle table: the happy path moves strictly
// forward, and cancelled is reachable from every non-terminal state.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:  {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:      {OrderStatusDelivering, OrderStatusCancelled},
	OrderStatusDelivering: {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// IsValid reports whether the value is a known status
func (s OrderStatus) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// IsTerminal reports whether the status admits no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransition reports whether from -> to is in the lifecycle table
func CanTransition(from, to OrderStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns a typed error for a rejected status write
func ValidateTransition(from, to OrderStatus) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, to)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// Order represents a placed order. All monetary fields are snapshots taken
// at submission time; they are never recomputed from current prices.
type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null;size:50" json:"order_number"`

	// Customer identity (guest checkout, no account required)
	CustomerID    *uint  `gorm:"index" json:"customer_id,omitempty"`
	CustomerName  string `gorm:"not null;size:255" json:"customer_name"`
	CustomerPhone string `gorm:"not null;size:30" json:"customer_phone"`
	CustomerEmail string `gorm:"size:255" json:"customer_email,omitempty"`

	DeliveryAddress Address `gorm:"embedded;embeddedPrefix:delivery_" json:"delivery_address"`

	// Financial information, in cents. Invariant: Total = Subtotal +
	// DeliveryFee - Discount.
	Subtotal    int64 `gorm:"not null" json:"subtotal"`
	DeliveryFee int64 `gorm:"default:0" json:"delivery_fee"`
	Discount    int64 `gorm:"default:0" json:"discount"`
	Total       int64 `gorm:"not null" json:"total"`

	Status        OrderStatus `gorm:"not null;default:'pending'" json:"status"`
	PaymentMethod string      `gorm:"not null;size:50" json:"payment_method"`
	CouponCode    string      `gorm:"size:50" json:"coupon_code,omitempty"`
	Notes         string      `gorm:"type:text" json:"notes,omitempty"`

	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`

	// Per-status timestamps
	ConfirmedAt *time.Time     `json:"confirmed_at,omitempty"`
	ReadyAt     *time.Time     `json:"ready_at,omitempty"`
	DeliveredAt *time.Time     `json:"delivered_at,omitempty"`
	CancelledAt *time.Time     `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items         []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"status_history,omitempty"`
}

// OrderItem captures one ordered line with its price snapshot. StockTracked
// records whether the product's stock counter was decremented for this line;
// it is what cancellation restores from, since a live counter of 0 is also
// the unlimited marker.
type OrderItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OrderID      uint      `gorm:"not null;index" json:"order_id"`
	ProductID    uint      `gorm:"not null;index" json:"product_id"`
	Name         string    `gorm:"not null;size:255" json:"name"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	UnitPrice    int64     `gorm:"not null" json:"unit_price"` // price at time of order
	LineTotal    int64     `gorm:"not null" json:"line_total"` // Quantity * UnitPrice
	Notes        string    `gorm:"size:500" json:"notes,omitempty"`
	StockTracked bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// OrderStatusHistory tracks order status changes
type OrderStatusHistory struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	OrderID   uint        `gorm:"not null;index" json:"order_id"`
	Status    OrderStatus `gorm:"not null" json:"status"`
	Comment   string      `gorm:"type:text" json:"comment"`
	CreatedAt time.Time   `json:"created_at"`
}

// Address represents a delivery address (embedded in Order)
type Address struct {
	Street     string `gorm:"size:255" json:"street"`
	Number     string `gorm:"size:20" json:"number"`
	Complement string `gorm:"size:100" json:"complement,omitempty"`
	District   string `gorm:"size:100" json:"district"`
	City       string `gorm:"size:100" json:"city"`
	PostalCode string `gorm:"size:20" json:"postal_code"`
	Reference  string `gorm:"size:255" json:"reference,omitempty"`
}

// TableName overrides
func (Order) TableName() string              { return "orders" }
func (OrderItem) TableName() string          { return "order_items" }
func (OrderStatusHistory) TableName() string { return "order_status_history" }

// GenerateOrderNumber formats the order number: ORD-YYYYMMDD-XXXXX
func GenerateOrderNumber(id uint, at time.Time) string {
	return fmt.Sprintf("ORD-%s-%05d", at.Format("20060102"), id)
}

// GetFormattedTotal returns the total as currency units
func (o *Order) GetFormattedTotal() float64 {
	return float64(o.Total) / 100
}

// CanBeCancelled checks if the order can still be cancelled
func (o *Order) CanBeCancelled() bool {
	return !o.Status.IsTerminal()
}
