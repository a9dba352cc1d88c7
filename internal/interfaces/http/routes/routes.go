// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/restaurant-backend/internal/config"
	"github.com/your-org/restaurant-backend/internal/domain/coupon"
	"github.com/your-org/restaurant-backend/internal/domain/loyalty"
	redisdb "github.com/your-org/restaurant-backend/internal/infrastructure/database/redis"
	"github.com/your-org/restaurant-backend/internal/interfaces/http/handlers"
	"github.com/your-org/restaurant-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires all API routes. The coupon registry and reward catalog
// are injected here so the whole tree shares one instance of each.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redisdb.Client, cfg *config.Config) {
	registry := coupon.NewRegistry(coupon.DefaultCoupons())
	rewards := loyalty.DefaultRewards()

	authHandler := handlers.NewAuthHandler(cfg)
	productHandler := handlers.NewProductHandler(db, cfg)
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg)
	couponHandler := handlers.NewCouponHandler(db, redisClient, cfg, registry)
	loyaltyHandler := handlers.NewLoyaltyHandler(db, cfg, rewards)
	orderHandler := handlers.NewOrderHandler(db, redisClient, cfg, registry, rewards)
	customerHandler := handlers.NewCustomerHandler(db, cfg)
	uploadHandler := handlers.NewUploadHandler(db, cfg)
	seedHandler := handlers.NewSeedHandler(db, cfg)

	// Public auth
	auth := rg.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/profile", authHandler.GetProfile)
		}
	}

	// Public menu
	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
	}
	rg.GET("/categories", productHandler.GetCategories)

	// Guest cart (session cookie)
	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.PUT("/items/:id/notes", cartHandler.UpdateItemNotes)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cart.DELETE("", cartHandler.ClearCart)
	}

	// Coupons
	coupons := rg.Group("/coupons")
	{
		coupons.GET("", couponHandler.GetCoupons)
		coupons.GET("/applied", couponHandler.GetAppliedCoupon)
		coupons.POST("/apply", couponHandler.ApplyCoupon)
		coupons.DELETE("/apply", couponHandler.RemoveCoupon)
	}

	// Loyalty program
	loyaltyRoutes := rg.Group("/loyalty")
	{
		loyaltyRoutes.GET("/status", loyaltyHandler.GetStatus)
		loyaltyRoutes.GET("/history", loyaltyHandler.GetHistory)
		loyaltyRoutes.GET("/rewards", loyaltyHandler.GetRewards)
		loyaltyRoutes.POST("/redeem", loyaltyHandler.RedeemReward)
	}

	// Checkout and order tracking
	orders := rg.Group("/orders")
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("/:number", orderHandler.TrackOrder)
	}

	// Back office
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		adminProducts := admin.Group("/products")
		{
			adminProducts.GET("", productHandler.AdminGetProducts)
			adminProducts.GET("/:id", productHandler.AdminGetProduct)
			adminProducts.POST("", productHandler.AdminCreateProduct)
			adminProducts.PUT("/:id", productHandler.AdminUpdateProduct)
			adminProducts.DELETE("/:id", productHandler.AdminDeleteProduct)
			adminProducts.PUT("/:id/stock", productHandler.AdminUpdateStock)
		}

		adminOrders := admin.Group("/orders")
		{
			adminOrders.GET("", orderHandler.AdminGetOrders)
			adminOrders.GET("/:id", orderHandler.AdminGetOrder)
			adminOrders.PUT("/:id/status", orderHandler.AdminUpdateStatus)
			adminOrders.PUT("/:id/cancel", orderHandler.AdminCancelOrder)
			adminOrders.GET("/:id/receipt", orderHandler.AdminGetReceipt)
		}

		adminCustomers := admin.Group("/customers")
		{
			adminCustomers.GET("", customerHandler.AdminListCustomers)
			adminCustomers.GET("/lookup", customerHandler.AdminLookupCustomer)
			adminCustomers.GET("/:id", customerHandler.AdminGetCustomer)
			adminCustomers.PUT("/:id", customerHandler.AdminUpdateCustomer)
		}

		uploads := admin.Group("/uploads")
		{
			uploads.POST("", uploadHandler.AdminUploadImage)
			uploads.DELETE("/:id", uploadHandler.AdminDeleteImage)
		}

		admin.POST("/seed", seedHandler.AdminSeed)
	}
}
