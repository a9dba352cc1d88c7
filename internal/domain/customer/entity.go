// internal/domain/customer/entity.go
package customer

import (
	"strings"
	"time"
	"unicode"
)

// Customer represents a storefront customer. Customers are created or
// updated as a side effect of order creation and are never deleted.
type Customer struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"not null;size:255" json:"name"`
	Phone          string    `gorm:"not null;size:30" json:"phone"`
	LookupKey      string    `gorm:"uniqueIndex;not null;size:300" json:"-"`
	Email          string    `gorm:"size:255" json:"email,omitempty"`
	Points         int       `gorm:"default:0" json:"points"`          // spendable balance
	LifetimePoints int       `gorm:"default:0" json:"lifetime_points"` // monotonic, drives tier
	TotalSpent     int64     `gorm:"default:0" json:"total_spent"`     // cents
	OrderCount     int       `gorm:"default:0" json:"order_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Customer) TableName() string {
	return "customers"
}

// NormalizePhone strips everything except digits
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeName lowercases and trims a customer name
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// LookupKeyFor builds the natural compound key used to find returning
// customers: digits-only phone plus normalized name.
func LookupKeyFor(phone, name string) string {
	return NormalizePhone(phone) + ":" + NormalizeName(name)
}
