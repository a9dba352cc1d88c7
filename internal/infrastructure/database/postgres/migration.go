// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/restaurant-backend/internal/domain/customer"
	"github.com/your-org/restaurant-backend/internal/domain/loyalty"
	"github.com/your-org/restaurant-backend/internal/domain/order"
	"github.com/your-org/restaurant-backend/internal/domain/product"
	"github.com/your-org/restaurant-backend/internal/domain/upload"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		// Catalog
		&product.Category{},
		&product.Product{},

		// Customers and loyalty
		&customer.Customer{},
		&loyalty.Entry{},

		// Orders
		&order.Order{},
		&order.OrderItem{},
		&order.OrderStatusHistory{},

		// Uploads
		&upload.UploadedFile{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_featured ON products(is_featured, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Category indexes
		"CREATE INDEX IF NOT EXISTS idx_categories_slug ON categories(slug)",
		"CREATE INDEX IF NOT EXISTS idx_categories_sort_order ON categories(sort_order)",

		// Customer indexes
		"CREATE INDEX IF NOT EXISTS idx_customers_phone ON customers(phone)",
		"CREATE INDEX IF NOT EXISTS idx_customers_total_spent ON customers(total_spent DESC)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id)",
		"CREATE INDEX IF NOT EXISTS idx_orders_order_number ON orders(order_number)",
		"CREATE INDEX IF NOT EXISTS idx_orders_phone ON orders(customer_phone)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",

		// Order items indexes
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",

		// Order status history indexes
		"CREATE INDEX IF NOT EXISTS idx_order_status_history_order ON order_status_history(order_id, created_at DESC)",

		// Loyalty ledger indexes
		"CREATE INDEX IF NOT EXISTS idx_loyalty_entries_customer ON loyalty_entries(customer_id, created_at DESC)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts the starter menu. Seeding is idempotent: when any
// products already exist the menu is left untouched, so re-running the seed
// never resets admin edits.
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	var productCount int64
	if err := m.db.Model(&product.Product{}).Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to check existing products: %w", err)
	}
	if productCount > 0 {
		log.Printf("⏭️ Menu already seeded (%d products), skipping", productCount)
		return nil
	}

	if err := m.seedMenu(); err != nil {
		return fmt.Errorf("failed to seed menu: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedMenu creates the default categories and menu items
func (m *Migration) seedMenu() error {
	log.Println("🍔 Seeding menu...")

	categories := []product.Category{
		{Name: "Burgers", Slug: "burgers", SortOrder: 1, IsActive: true},
		{Name: "Pizzas", Slug: "pizzas", SortOrder: 2, IsActive: true},
		{Name: "Pratos Executivos", Slug: "pratos-executivos", SortOrder: 3, IsActive: true},
		{Name: "Bebidas", Slug: "bebidas", SortOrder: 4, IsActive: true},
		{Name: "Sobremesas", Slug: "sobremesas", SortOrder: 5, IsActive: true},
	}

	bySlug := make(map[string]uint, len(categories))
	for i := range categories {
		cat := &categories[i]
		var existing product.Category
		result := m.db.Where("slug = ?", cat.Slug).First(&existing)
		if result.Error != nil {
			if err := m.db.Create(cat).Error; err != nil {
				return err
			}
			log.Printf("✅ Created category: %s", cat.Name)
			bySlug[cat.Slug] = cat.ID
		} else {
			bySlug[cat.Slug] = existing.ID
		}
	}

	menu := []product.Product{
		{
			Name:        "X-Burger da Casa",
			Description: "Pão brioche, hambúrguer artesanal 180g, queijo prato, alface, tomate e molho especial",
			Price:       2890, // R$28.90
			CategoryID:  bySlug["burgers"],
			IsActive:    true,
			IsFeatured:  true,
			PrepTimeMin: 20,
			ServingSize: "1 pessoa",
		},
		{
			Name:        "Burger Duplo Bacon",
			Description: "Dois hambúrgueres 150g, cheddar, bacon crocante e cebola caramelizada",
			Price:       3490,
			CategoryID:  bySlug["burgers"],
			IsActive:    true,
			PrepTimeMin: 25,
			ServingSize: "1 pessoa",
		},
		{
			Name:        "Pizza Margherita",
			Description: "Molho de tomate, mussarela de búfala, manjericão fresco e azeite",
			Price:       4590,
			CategoryID:  bySlug["pizzas"],
			IsActive:    true,
			IsFeatured:  true,
			PrepTimeMin: 30,
			ServingSize: "2 pessoas",
		},
		{
			Name:        "Pizza Calabresa",
			Description: "Molho de tomate, mussarela, calabresa fatiada e cebola",
			Price:       4290,
			CategoryID:  bySlug["pizzas"],
			IsActive:    true,
			PrepTimeMin: 30,
			ServingSize: "2 pessoas",
		},
		{
			Name:        "Feijoada Completa",
			Description: "Feijoada tradicional com arroz, couve, farofa, torresmo e laranja",
			Price:       5490,
			CategoryID:  bySlug["pratos-executivos"],
			IsActive:    true,
			IsFeatured:  true,
			Stock:       15, // limited batch per day
			PrepTimeMin: 15,
			ServingSize: "1-2 pessoas",
		},
		{
			Name:        "Filé à Parmegiana",
			Description: "Filé empanado ao molho de tomate com queijo gratinado, arroz e fritas",
			Price:       4890,
			CategoryID:  bySlug["pratos-executivos"],
			IsActive:    true,
			PrepTimeMin: 35,
			ServingSize: "1 pessoa",
		},
		{
			Name:        "Refrigerante Lata",
			Description: "Coca-Cola, Guaraná ou Fanta 350ml",
			Price:       690,
			CategoryID:  bySlug["bebidas"],
			IsActive:    true,
			Stock:       48,
			PrepTimeMin: 0,
			ServingSize: "350ml",
		},
		{
			Name:        "Suco Natural",
			Description: "Laranja, abacaxi ou maracujá, feito na hora (500ml)",
			Price:       1190,
			CategoryID:  bySlug["bebidas"],
			IsActive:    true,
			PrepTimeMin: 5,
			ServingSize: "500ml",
		},
		{
			Name:        "Pudim de Leite",
			Description: "Pudim de leite condensado com calda de caramelo",
			Price:       1290,
			CategoryID:  bySlug["sobremesas"],
			IsActive:    true,
			Stock:       10,
			PrepTimeMin: 0,
			ServingSize: "1 fatia",
		},
		{
			Name:        "Petit Gateau",
			Description: "Bolo quente de chocolate com sorvete de creme",
			Price:       1890,
			CategoryID:  bySlug["sobremesas"],
			IsActive:    true,
			PrepTimeMin: 15,
			ServingSize: "1 pessoa",
		},
	}

	for _, item := range menu {
		if err := m.db.Create(&item).Error; err != nil {
			log.Printf("⚠️ Failed to create menu item %s: %v", item.Name, err)
			return err
		}
		log.Printf("✅ Created menu item: %s", item.Name)
	}

	return nil
}
