// internal/interfaces/http/handlers/coupon.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/restaurant-backend/internal/config"
	"github.com/your-org/restaurant-backend/internal/domain/cart"
	"github.com/your-org/restaurant-backend/internal/domain/coupon"
	"github.com/your-org/restaurant-backend/internal/domain/product"
	redisdb "github.com/your-org/restaurant-backend/internal/infrastructure/database/redis"
	"gorm.io/gorm"
)

// CouponHandler handles coupon endpoints
type CouponHandler struct {
	couponService *coupon.Service
	cartService   *cart.Service
	config        *config.Config
}

// NewCouponHandler creates a new coupon handler
func NewCouponHandler(db *gorm.DB, redisClient *redisdb.Client, cfg *config.Config, registry *coupon.Registry) *CouponHandler {
	productService := product.NewService(db, cfg)
	return &CouponHandler{
		couponService: coupon.NewService(redisClient, cfg, registry),
		cartService:   cart.NewService(redisClient, cfg, productService),
		config:        cfg,
	}
}

// ApplyCouponRequest represents a coupon application
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// ApplyCoupon handles POST /coupons/apply. The code is validated against the
// cart's current subtotal.
func (h *CouponHandler) ApplyCoupon(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config.Checkout.CartTTL)

	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cartResponse, err := h.cartService.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	result, err := h.couponService.Apply(c.Request.Context(), sessionID, req.Code, cartResponse.Totals.Subtotal)
	if err != nil {
		c.JSON(couponErrorStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": result.Message,
		"data":    result,
	})
}

// RemoveCoupon handles DELETE /coupons/apply
func (h *CouponHandler) RemoveCoupon(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config.Checkout.CartTTL)

	if err := h.couponService.Remove(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove coupon",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupon removed",
	})
}

// GetCoupons handles GET /coupons
func (h *CouponHandler) GetCoupons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Coupons retrieved successfully",
		"data":    h.couponService.Available(),
	})
}

// GetAppliedCoupon handles GET /coupons/applied
func (h *CouponHandler) GetAppliedCoupon(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config.Checkout.CartTTL)

	applied, err := h.couponService.Applied(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to read coupon state",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": applied,
	})
}

// couponErrorStatus maps coupon validation errors to HTTP status codes
func couponErrorStatus(err error) int {
	switch {
	case errors.Is(err, coupon.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, coupon.ErrAlreadyUsed),
		errors.Is(err, coupon.ErrExpired),
		errors.Is(err, coupon.ErrMinOrderNotMet):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
