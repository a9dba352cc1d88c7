// internal/interfaces/http/handlers/seed.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/restaurant-backend/internal/config"
	"github.com/your-org/restaurant-backend/internal/infrastructure/database/postgres"
	"gorm.io/gorm"
)

// SeedHandler handles the admin seed endpoint
type SeedHandler struct {
	migration *postgres.Migration
	config    *config.Config
}

// NewSeedHandler creates a new seed handler
func NewSeedHandler(db *gorm.DB, cfg *config.Config) *SeedHandler {
	return &SeedHandler{
		migration: postgres.NewMigration(db),
		config:    cfg,
	}
}

// AdminSeed handles POST /admin/seed. Seeding is idempotent: an already
// populated menu is left untouched.
func (h *SeedHandler) AdminSeed(c *gin.Context) {
	if err := h.migration.SeedInitialData(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Seed completed",
	})
}
