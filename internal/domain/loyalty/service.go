// internal/domain/loyalty/service.go
package loyalty

import (
	"fmt"

	"github.com/your-org/restaurant-backend/internal/config"
	"github.com/your-org/restaurant-backend/internal/domain/customer"
	"gorm.io/gorm"
)

// Service handles loyalty point accrual and redemption
type Service struct {
	db      *gorm.DB
	config  *config.Config
	rewards map[string]Reward
}

// NewService creates a new loyalty service with an injected reward catalog
func NewService(db *gorm.DB, cfg *config.Config, rewards []Reward) *Service {
	byID := make(map[string]Reward, len(rewards))
	for _, r := range rewards {
		byID[r.ID] = r
	}
	return &Service{
		db:      db,
		config:  cfg,
		rewards: byID,
	}
}

// AddPoints credits points for a completed order total at the customer's
// current tier and appends a history entry. The tier used is the one held
// before this credit, so crossing a threshold pays off on the next order.
func (s *Service) AddPoints(tx *gorm.DB, cust *customer.Customer, orderTotal int64, orderID uint) (int, error) {
	if tx == nil {
		tx = s.db
	}

	tier := TierFor(cust.LifetimePoints)
	earned := PointsFor(orderTotal, tier)
	if earned <= 0 {
		return 0, nil
	}

	updates := map[string]interface{}{
		"points":          gorm.Expr("points + ?", earned),
		"lifetime_points": gorm.Expr("lifetime_points + ?", earned),
	}
	if err := tx.Model(cust).Updates(updates).Error; err != nil {
		return 0, fmt.Errorf("failed to credit points: %w", err)
	}

	entry := Entry{
		CustomerID:  cust.ID,
		Kind:        "earned",
		Points:      earned,
		Description: fmt.Sprintf("Pedido #%d (%s)", orderID, tier),
		OrderID:     &orderID,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return 0, fmt.Errorf("failed to record loyalty entry: %w", err)
	}

	cust.Points += earned
	cust.LifetimePoints += earned
	return earned, nil
}

// RedeemReward spends points on a reward. It fails without mutation when the
// spendable balance is short; lifetime points are never touched.
func (s *Service) RedeemReward(customerID uint, rewardID string) (*Reward, error) {
	reward, ok := s.rewards[rewardID]
	if !ok {
		return nil, fmt.Errorf("reward not found")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cust customer.Customer
		if err := tx.First(&cust, customerID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("customer not found")
			}
			return fmt.Errorf("failed to retrieve customer: %w", err)
		}

		if cust.Points < reward.Cost {
			return fmt.Errorf("insufficient points: have %d, need %d", cust.Points, reward.Cost)
		}

		if err := tx.Model(&cust).
			Update("points", gorm.Expr("points - ?", reward.Cost)).Error; err != nil {
			return fmt.Errorf("failed to deduct points: %w", err)
		}

		entry := Entry{
			CustomerID:  customerID,
			Kind:        "redeemed",
			Points:      -reward.Cost,
			Description: reward.Name,
			RewardID:    reward.ID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to record redemption: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &reward, nil
}

// Progress returns the customer's tier progress
func (s *Service) Progress(customerID uint) (*Progress, error) {
	var cust customer.Customer
	if err := s.db.First(&cust, customerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("customer not found")
		}
		return nil, fmt.Errorf("failed to retrieve customer: %w", err)
	}

	progress := NextLevelProgress(cust.LifetimePoints)
	return &progress, nil
}

// History returns the customer's loyalty log, newest first, capped by config
func (s *Service) History(customerID uint) ([]Entry, error) {
	var entries []Entry
	err := s.db.Where("customer_id = ?", customerID).
		Order("created_at desc").
		Limit(s.config.Loyalty.HistoryLimit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve loyalty history: %w", err)
	}
	return entries, nil
}

// Rewards lists the reward catalog
func (s *Service) Rewards() []Reward {
	out := make([]Reward, 0, len(s.rewards))
	for _, r := range s.rewards {
		out = append(out, r)
	}
	return out
}
