// internal/domain/cart/service.go
package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/restaurant-backend/internal/config"
	"github.com/your-org/restaurant-backend/internal/domain/product"
	redisdb "github.com/your-org/restaurant-backend/internal/infrastructure/database/redis"
)

// Service handles cart business logic
type Service struct {
	redisClient    *redisdb.Client
	config         *config.Config
	productService *product.Service
}

// NewService creates a new cart service
func NewService(redisClient *redisdb.Client, cfg *config.Config, productService *product.Service) *Service {
	return &Service{
		redisClient:    redisClient,
		config:         cfg,
		productService: productService,
	}
}

// CartResponse represents a cart with computed totals
type CartResponse struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	Totals    CartTotals `json:"totals"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Notes     string `json:"notes"`
}

// UpdateCartItemRequest represents update cart item request
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateNotesRequest represents update item notes request
type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

// GetCart retrieves the session's cart with totals
func (s *Service) GetCart(ctx context.Context, sessionID string) (*CartResponse, error) {
	sessionCart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.respond(sessionCart), nil
}

// AddToCart adds an item to the cart, clamping to the product's stock ceiling
func (s *Service) AddToCart(ctx context.Context, sessionID string, req *AddToCartRequest) (*CartResponse, error) {
	prod, err := s.productService.GetActiveProduct(req.ProductID)
	if err != nil {
		return nil, err
	}

	sessionCart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if _, err := sessionCart.Add(prod, req.Quantity, req.Notes); err != nil {
		return nil, err
	}

	if err := s.save(ctx, sessionCart); err != nil {
		return nil, err
	}
	return s.respond(sessionCart), nil
}

// UpdateCartItem updates quantity of a cart item; zero removes it
func (s *Service) UpdateCartItem(ctx context.Context, sessionID string, productID uint, req *UpdateCartItemRequest) (*CartResponse, error) {
	prod, err := s.productService.GetProduct(productID)
	if err != nil {
		return nil, err
	}

	sessionCart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := sessionCart.UpdateQuantity(prod, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.save(ctx, sessionCart); err != nil {
		return nil, err
	}
	return s.respond(sessionCart), nil
}

// UpdateItemNotes updates the free-text note on a cart item
func (s *Service) UpdateItemNotes(ctx context.Context, sessionID string, productID uint, notes string) (*CartResponse, error) {
	sessionCart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := sessionCart.UpdateNotes(productID, notes); err != nil {
		return nil, err
	}

	if err := s.save(ctx, sessionCart); err != nil {
		return nil, err
	}
	return s.respond(sessionCart), nil
}

// RemoveFromCart removes an item from the cart
func (s *Service) RemoveFromCart(ctx context.Context, sessionID string, productID uint) (*CartResponse, error) {
	sessionCart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := sessionCart.Remove(productID); err != nil {
		return nil, err
	}

	if err := s.save(ctx, sessionCart); err != nil {
		return nil, err
	}
	return s.respond(sessionCart), nil
}

// ClearCart removes all items from the session's cart
func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	return s.redisClient.Del(ctx, cartKey(sessionID))
}

// Private helpers

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

func (s *Service) load(ctx context.Context, sessionID string) (*SessionCart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required")
	}

	var sessionCart SessionCart
	err := s.redisClient.GetJSON(ctx, cartKey(sessionID), &sessionCart)
	if err == redis.Nil {
		now := time.Now().UTC()
		return &SessionCart{
			SessionID: sessionID,
			Items:     []CartItem{},
			CreatedAt: now,
			UpdatedAt: now,
			ExpiresAt: now.Add(s.config.Checkout.CartTTL),
		}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return &sessionCart, nil
}

func (s *Service) save(ctx context.Context, sessionCart *SessionCart) error {
	return s.redisClient.SetJSON(ctx, cartKey(sessionCart.SessionID), sessionCart, s.config.Checkout.CartTTL)
}

func (s *Service) respond(sessionCart *SessionCart) *CartResponse {
	return &CartResponse{
		SessionID: sessionCart.SessionID,
		Items:     sessionCart.Items,
		Totals:    sessionCart.Totals(s.config.Checkout.DeliveryFee, s.config.Checkout.FreeDeliveryMin),
		CreatedAt: sessionCart.CreatedAt,
		UpdatedAt: sessionCart.UpdatedAt,
	}
}
