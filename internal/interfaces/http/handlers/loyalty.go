// internal/interfaces/http/handlers/loyalty.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/restaurant-backend/internal/config"
	"github.com/your-org/restaurant-backend/internal/domain/customer"
	"github.com/your-org/restaurant-backend/internal/domain/loyalty"
	"gorm.io/gorm"
)

// LoyaltyHandler handles loyalty program endpoints
type LoyaltyHandler struct {
	loyaltyService  *loyalty.Service
	customerService *customer.Service
	config          *config.Config
}

// NewLoyaltyHandler creates a new loyalty handler
func NewLoyaltyHandler(db *gorm.DB, cfg *config.Config, rewards []loyalty.Reward) *LoyaltyHandler {
	return &LoyaltyHandler{
		loyaltyService:  loyalty.NewService(db, cfg, rewards),
		customerService: customer.NewService(db, cfg),
		config:          cfg,
	}
}

// lookupCustomer resolves the customer from phone (+ optional name) query
// parameters. Guests identify themselves this way; there are no accounts.
func (h *LoyaltyHandler) lookupCustomer(c *gin.Context) (*customer.Customer, bool) {
	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "phone query parameter is required",
		})
		return nil, false
	}

	cust, err := h.customerService.Lookup(phone, c.Query("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return nil, false
	}
	return cust, true
}

// GetStatus handles GET /loyalty/status
func (h *LoyaltyHandler) GetStatus(c *gin.Context) {
	cust, ok := h.lookupCustomer(c)
	if !ok {
		return
	}

	progress, err := h.loyaltyService.Progress(cust.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute progress",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"customer": cust,
			"progress": progress,
		},
	})
}

// GetHistory handles GET /loyalty/history
func (h *LoyaltyHandler) GetHistory(c *gin.Context) {
	cust, ok := h.lookupCustomer(c)
	if !ok {
		return
	}

	entries, err := h.loyaltyService.History(cust.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve history",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "History retrieved successfully",
		"data":    entries,
	})
}

// GetRewards handles GET /loyalty/rewards
func (h *LoyaltyHandler) GetRewards(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Rewards retrieved successfully",
		"data":    h.loyaltyService.Rewards(),
	})
}

// RedeemRequest represents a reward redemption
type RedeemRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Name     string `json:"name"`
	RewardID string `json:"reward_id" binding:"required"`
}

// RedeemReward handles POST /loyalty/redeem
func (h *LoyaltyHandler) RedeemReward(c *gin.Context) {
	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cust, err := h.customerService.Lookup(req.Phone, req.Name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	reward, err := h.loyaltyService.RedeemReward(cust.ID, req.RewardID)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reward redeemed successfully",
		"data":    reward,
	})
}
