// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/restaurant-backend/internal/config"
	"github.com/your-org/restaurant-backend/internal/domain/cart"
	"github.com/your-org/restaurant-backend/internal/domain/coupon"
	"github.com/your-org/restaurant-backend/internal/domain/customer"
	"github.com/your-org/restaurant-backend/internal/domain/inventory"
	"github.com/your-org/restaurant-backend/internal/domain/loyalty"
	"github.com/your-org/restaurant-backend/internal/pkg/notify"
	"gorm.io/gorm"
)

// Service handles the order lifecycle
type Service struct {
	db               *gorm.DB
	config           *config.Config
	cartService      *cart.Service
	couponService    *coupon.Service
	customerService  *customer.Service
	loyaltyService   *loyalty.Service
	inventoryService *inventory.Service
	notifier         *notify.Service
}

// NewService creates a new order service
func NewService(
	db *gorm.DB,
	cfg *config.Config,
	cartService *cart.Service,
	couponService *coupon.Service,
	customerService *customer.Service,
	loyaltyService *loyalty.Service,
	inventoryService *inventory.Service,
	notifier *notify.Service,
) *Service {
	return &Service{
		db:               db,
		config:           cfg,
		cartService:      cartService,
		couponService:    couponService,
		customerService:  customerService,
		loyaltyService:   loyaltyService,
		inventoryService: inventoryService,
		notifier:         notifier,
	}
}

// CreateOrderRequest represents checkout submission data. Any status field a
// client sends is ignored: new orders always start pending.
type CreateOrderRequest struct {
	CustomerName    string  `json:"customer_name" binding:"required"`
	CustomerPhone   string  `json:"customer_phone" binding:"required"`
	CustomerEmail   string  `json:"customer_email"`
	DeliveryAddress Address `json:"delivery_address" binding:"required"`
	PaymentMethod   string  `json:"payment_method" binding:"required"`
	Notes           string  `json:"notes"`
}

// OrderListRequest represents order list query parameters
type OrderListRequest struct {
	Page       int         `form:"page,default=1"`
	Limit      int         `form:"limit,default=20"`
	Status     OrderStatus `form:"status"`
	CustomerID uint        `form:"customer_id"`
}

// UpdateStatusRequest represents an admin status write
type UpdateStatusRequest struct {
	Status  OrderStatus `json:"status" binding:"required"`
	Comment string      `json:"comment"`
}

// OrderListResponse represents orders with pagination
type OrderListResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// CreateOrder creates an order from the session's cart and coupon state
func (s *Service) CreateOrder(ctx context.Context, sessionID string, req *CreateOrderRequest) (*Order, error) {
	cartResponse, err := s.cartService.GetCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}
	if len(cartResponse.Items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	lines := cartLines(cartResponse.Items)
	tracked, err := s.inventoryService.VerifyStock(lines)
	if err != nil {
		return nil, err
	}
	trackedIDs := make(map[uint]bool, len(tracked))
	for _, line := range tracked {
		trackedIDs[line.ProductID] = true
	}

	// Totals snapshot: subtotal and fee from the cart, discount from the
	// session's applied coupon. Never recomputed after this point.
	discount, err := s.couponService.Discount(ctx, sessionID, cartResponse.Totals.Subtotal)
	if err != nil {
		return nil, fmt.Errorf("failed to compute discount: %w", err)
	}
	appliedCoupon, err := s.couponService.Applied(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read coupon state: %w", err)
	}
	couponCode := ""
	if appliedCoupon != nil {
		couponCode = appliedCoupon.Code
	}

	now := time.Now().UTC()
	newOrder := newOrderSnapshot(req, cartResponse.Totals, couponCode, discount, now, s.config.Checkout.EstimatedDelivery)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newOrder).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		newOrder.OrderNumber = GenerateOrderNumber(newOrder.ID, now)
		if err := tx.Model(&newOrder).Update("order_number", newOrder.OrderNumber).Error; err != nil {
			return fmt.Errorf("failed to set order number: %w", err)
		}

		for _, item := range cartResponse.Items {
			orderItem := OrderItem{
				OrderID:      newOrder.ID,
				ProductID:    item.ProductID,
				Name:         item.Name,
				Quantity:     item.Quantity,
				UnitPrice:    item.UnitPrice,
				LineTotal:    item.UnitPrice * int64(item.Quantity),
				Notes:        item.Notes,
				StockTracked: trackedIDs[item.ProductID],
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}

		history := OrderStatusHistory{
			OrderID:   newOrder.ID,
			Status:    OrderStatusPending,
			Comment:   "Order created",
			CreatedAt: now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to create status history: %w", err)
		}

		// Customer upsert and point accrual ride the same transaction.
		cust, err := s.customerService.UpsertFromOrder(tx, req.CustomerName, req.CustomerPhone, req.CustomerEmail, newOrder.Total)
		if err != nil {
			return err
		}
		if _, err := s.loyaltyService.AddPoints(tx, cust, newOrder.Total, newOrder.ID); err != nil {
			return err
		}

		newOrder.CustomerID = &cust.ID
		if err := tx.Model(&newOrder).Update("customer_id", cust.ID).Error; err != nil {
			return fmt.Errorf("failed to link customer: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit side effects are best-effort and never roll the order back.
	if newOrder.CouponCode != "" {
		if err := s.couponService.MarkUsed(ctx, sessionID, newOrder.CouponCode); err != nil {
			logrus.WithField("order", newOrder.OrderNumber).Warnf("failed to mark coupon used: %v", err)
		}
	}

	s.inventoryService.Decrement(tracked)

	if err := s.cartService.ClearCart(ctx, sessionID); err != nil {
		logrus.WithField("order", newOrder.OrderNumber).Warnf("failed to clear cart: %v", err)
	}

	if s.notifier != nil {
		conf := &notify.OrderConfirmation{
			To:                newOrder.CustomerEmail,
			CustomerName:      newOrder.CustomerName,
			OrderNumber:       newOrder.OrderNumber,
			Total:             newOrder.Total,
			EstimatedDelivery: *newOrder.EstimatedDelivery,
		}
		if err := s.notifier.SendOrderConfirmation(conf); err != nil {
			logrus.WithField("order", newOrder.OrderNumber).Warnf("failed to send confirmation email: %v", err)
		}
	}

	return s.GetOrder(newOrder.ID)
}

// GetOrders retrieves orders with filtering and pagination, newest first
func (s *Service) GetOrders(req *OrderListRequest) (*OrderListResponse, error) {
	var orders []Order
	var total int64

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = 20
	}

	query := s.db.Model(&Order{}).Preload("Items")

	if req.Status != "" {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("unknown status %q", req.Status)
		}
		query = query.Where("status = ?", req.Status)
	}
	if req.CustomerID > 0 {
		query = query.Where("customer_id = ?", req.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at desc").Offset(offset).Limit(req.Limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &OrderListResponse{
		Orders: orders,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// GetOrder retrieves a single order by ID
func (s *Service) GetOrder(id uint) (*Order, error) {
	var o Order
	result := s.db.
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&o, id)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}
	return &o, nil
}

// GetOrderByNumber retrieves a single order by order number
func (s *Service) GetOrderByNumber(orderNumber string) (*Order, error) {
	var o Order
	result := s.db.
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("order_number = ?", orderNumber).
		First(&o)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}
	return &o, nil
}

// UpdateStatus moves an order along the lifecycle. Writes that skip or
// reverse the lifecycle are rejected with ErrInvalidTransition.
func (s *Service) UpdateStatus(orderID uint, req *UpdateStatusRequest) (*Order, error) {
	var o Order
	if err := s.db.First(&o, orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}

	if err := ValidateTransition(o.Status, req.Status); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status": req.Status,
	}
	switch req.Status {
	case OrderStatusConfirmed:
		updates["confirmed_at"] = now
	case OrderStatusReady:
		updates["ready_at"] = now
	case OrderStatusDelivered:
		updates["delivered_at"] = now
	case OrderStatusCancelled:
		updates["cancelled_at"] = now
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&o).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		history := OrderStatusHistory{
			OrderID:   orderID,
			Status:    req.Status,
			Comment:   req.Comment,
			CreatedAt: now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to create status history: %w", err)
		}

		if req.Status == OrderStatusCancelled {
			var items []OrderItem
			if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
				return fmt.Errorf("failed to load order items: %w", err)
			}
			if err := s.inventoryService.Restore(tx, trackedLines(items)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(orderID)
}

// CancelOrder cancels an order from any non-terminal state
func (s *Service) CancelOrder(orderID uint, reason string) (*Order, error) {
	comment := "Order cancelled"
	if reason != "" {
		comment = fmt.Sprintf("Order cancelled: %s", reason)
	}
	return s.UpdateStatus(orderID, &UpdateStatusRequest{
		Status:  OrderStatusCancelled,
		Comment: comment,
	})
}

// Private helpers

// newOrderSnapshot builds the order to persist from the checkout request and
// the cart/coupon outputs. Status is always pending regardless of anything
// the client sent, the delivery estimate is createdAt plus the configured
// offset, and the monetary fields are frozen here: Total = Subtotal +
// DeliveryFee - Discount, never recomputed afterwards.
func newOrderSnapshot(req *CreateOrderRequest, totals cart.CartTotals, couponCode string, discount int64, now time.Time, deliveryOffset time.Duration) Order {
	estimated := now.Add(deliveryOffset)
	return Order{
		CustomerName:      req.CustomerName,
		CustomerPhone:     customer.NormalizePhone(req.CustomerPhone),
		CustomerEmail:     req.CustomerEmail,
		DeliveryAddress:   req.DeliveryAddress,
		Subtotal:          totals.Subtotal,
		DeliveryFee:       totals.DeliveryFee,
		Discount:          discount,
		Total:             totals.Subtotal + totals.DeliveryFee - discount,
		Status:            OrderStatusPending,
		PaymentMethod:     req.PaymentMethod,
		CouponCode:        couponCode,
		Notes:             req.Notes,
		EstimatedDelivery: &estimated,
		CreatedAt:         now,
	}
}

func cartLines(items []cart.CartItem) []inventory.Line {
	lines := make([]inventory.Line, len(items))
	for i, item := range items {
		lines[i] = inventory.Line{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return lines
}

// trackedLines converts order items back into inventory lines, keeping only
// the ones whose stock counter was decremented at submission.
func trackedLines(items []OrderItem) []inventory.Line {
	lines := make([]inventory.Line, 0, len(items))
	for _, item := range items {
		if !item.StockTracked {
			continue
		}
		lines = append(lines, inventory.Line{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return lines
}
