// internal/domain/inventory/service.go
package inventory

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/restaurant-backend/internal/config"
	"github.com/your-org/restaurant-backend/internal/domain/product"
	"gorm.io/gorm"
)

// Service reconciles product stock around order submission
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new inventory service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// Line is one (product, quantity) pair to verify or decrement
type Line struct {
	ProductID uint
	Quantity  int
}

// VerifyStock blocks an order only when a product with a finite stock figure
// has fewer units than requested. Absent or zero stock counts as unlimited.
// When a lookup fails the behavior follows Checkout.AllowOversellOnError:
// fail open (permit the order) or fail closed.
//
// It returns the subset of lines whose product tracks a finite stock figure.
// Only that subset is decremented, and the caller must remember it: once a
// counter reaches zero it is indistinguishable from the unlimited marker, so
// tracked-ness cannot be re-derived from the products table later.
func (s *Service) VerifyStock(lines []Line) ([]Line, error) {
	tracked := make([]Line, 0, len(lines))
	for _, line := range lines {
		var prod product.Product
		err := s.db.Select("id", "name", "stock").First(&prod, line.ProductID).Error
		if err != nil {
			if s.config.Checkout.AllowOversellOnError {
				logrus.WithFields(logrus.Fields{
					"product_id": line.ProductID,
					"error":      err.Error(),
				}).Warn("stock verification failed, allowing order")
				continue
			}
			return nil, fmt.Errorf("failed to verify stock for product %d: %w", line.ProductID, err)
		}

		if !prod.TracksStock() {
			continue
		}

		if prod.Stock < line.Quantity {
			return nil, fmt.Errorf("insufficient stock for '%s': available %d, requested %d",
				prod.Name, prod.Stock, line.Quantity)
		}

		tracked = append(tracked, line)
	}
	return tracked, nil
}

// Decrement reduces stock counters after an order is persisted. Lines must be
// the tracked subset returned by VerifyStock. It is best-effort and
// non-transactional: failures are logged and swallowed so they never block a
// sale. GREATEST keeps concurrent oversells from going negative.
func (s *Service) Decrement(lines []Line) {
	for _, line := range lines {
		result := s.db.Model(&product.Product{}).
			Where("id = ?", line.ProductID).
			UpdateColumn("stock", gorm.Expr("GREATEST(stock - ?, 0)", line.Quantity))

		if result.Error != nil {
			logrus.WithFields(logrus.Fields{
				"product_id": line.ProductID,
				"quantity":   line.Quantity,
				"error":      result.Error.Error(),
			}).Warn("stock decrement failed")
		}
	}
}

// Restore returns stock when an order is cancelled. Lines must be the subset
// that was actually decremented (order items flagged stock_tracked): a
// current stock of 0 can mean either "unlimited" or "sold out", so filtering
// on the live counter here would strand products whose last units the
// cancelled order consumed.
func (s *Service) Restore(tx *gorm.DB, lines []Line) error {
	if tx == nil {
		tx = s.db
	}
	for _, line := range lines {
		err := tx.Model(&product.Product{}).
			Where("id = ?", line.ProductID).
			UpdateColumn("stock", gorm.Expr("stock + ?", line.Quantity)).Error
		if err != nil {
			return fmt.Errorf("failed to restore stock for product %d: %w", line.ProductID, err)
		}
	}
	return nil
}
