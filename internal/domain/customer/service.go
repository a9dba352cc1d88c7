// internal/domain/customer/service.go
package customer

import (
	"fmt"

	"github.com/your-org/restaurant-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles customer records
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new customer service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// Lookup finds a customer by phone, optionally narrowed by name. Phone and
// name are normalized before matching.
func (s *Service) Lookup(phone, name string) (*Customer, error) {
	var cust Customer

	if name != "" {
		err := s.db.Where("lookup_key = ?", LookupKeyFor(phone, name)).First(&cust).Error
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("customer not found")
		} else if err != nil {
			return nil, fmt.Errorf("failed to look up customer: %w", err)
		}
		return &cust, nil
	}

	err := s.db.Where("phone = ?", NormalizePhone(phone)).First(&cust).Error
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("customer not found")
	} else if err != nil {
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}
	return &cust, nil
}

// Get retrieves a customer by ID
func (s *Service) Get(id uint) (*Customer, error) {
	var cust Customer
	if err := s.db.First(&cust, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("customer not found")
		}
		return nil, fmt.Errorf("failed to retrieve customer: %w", err)
	}
	return &cust, nil
}

// List returns customers ordered by lifetime spend (admin view)
func (s *Service) List() ([]Customer, error) {
	var customers []Customer
	if err := s.db.Order("total_spent desc").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// UpsertFromOrder creates the customer on first order or increments spend and
// order count on repeat orders. Runs inside the caller's transaction when one
// is passed. Point accrual is handled separately by the loyalty service.
func (s *Service) UpsertFromOrder(tx *gorm.DB, name, phone, email string, orderTotal int64) (*Customer, error) {
	if tx == nil {
		tx = s.db
	}

	key := LookupKeyFor(phone, name)

	var cust Customer
	err := tx.Where("lookup_key = ?", key).First(&cust).Error
	if err == gorm.ErrRecordNotFound {
		cust = Customer{
			Name:      name,
			Phone:     NormalizePhone(phone),
			LookupKey: key,
			Email:     email,
		}
		if err := tx.Create(&cust).Error; err != nil {
			return nil, fmt.Errorf("failed to create customer: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	updates := map[string]interface{}{
		"total_spent": gorm.Expr("total_spent + ?", orderTotal),
		"order_count": gorm.Expr("order_count + 1"),
	}
	if email != "" {
		updates["email"] = email
	}

	if err := tx.Model(&cust).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	// Re-read so the caller sees the incremented counters.
	if err := tx.First(&cust, cust.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload customer: %w", err)
	}

	return &cust, nil
}

// UpdateProfileRequest represents an admin customer update
type UpdateProfileRequest struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
}

// UpdateProfile merges profile fields into a customer record
func (s *Service) UpdateProfile(id uint, req *UpdateProfileRequest) (*Customer, error) {
	cust, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Name != nil {
		updates["name"] = *req.Name
		updates["lookup_key"] = LookupKeyFor(cust.Phone, *req.Name)
	}

	if len(updates) > 0 {
		if err := s.db.Model(cust).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update customer: %w", err)
		}
	}

	return s.Get(id)
}
