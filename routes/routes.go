package routes

import (
	"context"
	"net/http"
	"time"

	"pos-backoffice/handlers"
	"pos-backoffice/middleware"
	"pos-backoffice/repository"
	"pos-backoffice/services"
	"pos-backoffice/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes registers the loyalty API. A nil locker falls back to an
// in-process lock; a nil limiter disables rate limiting.
func SetupRoutes(r *gin.Engine, db *gorm.DB, locker services.CustomerLocker, limiter *middleware.RateLimiter) {
	utils.UseJSONFieldNames()

	store := repository.NewGormLedger(db)

	couponHandler := &handlers.LoyaltyCouponHandler{Coupons: services.NewCouponService(store)}
	redemptionHandler := &handlers.LoyaltyRedemptionHandler{Redemptions: services.NewRedemptionService(store, locker)}
	customerHandler := &handlers.LoyaltyCustomerHandler{Customers: services.NewCustomerService(store)}

	r.GET("/health", healthCheck(db))

	// Every loyalty route requires a merchant-scoped token
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	api.Use(middleware.MerchantMiddleware())
	if limiter != nil {
		api.Use(limiter.Middleware())
	}
	{
		coupons := api.Group("/loyalty-coupons")
		coupons.POST("", couponHandler.CreateCoupon)
		coupons.GET("", couponHandler.ListCoupons)
		coupons.GET("/:id", couponHandler.GetCoupon)
		coupons.PATCH("/:id", couponHandler.UpdateCoupon)
		coupons.DELETE("/:id", couponHandler.DeleteCoupon)

		// Path spelling is part of the public API.
		redemptions := api.Group("/loyalty-rewards-redemtions")
		redemptions.POST("", redemptionHandler.CreateRedemption)
		redemptions.GET("", redemptionHandler.ListRedemptions)
		redemptions.GET("/:id", redemptionHandler.GetRedemption)
		redemptions.PATCH("/:id", redemptionHandler.UpdateRedemption)
		redemptions.DELETE("/:id", redemptionHandler.DeleteRedemption)

		customers := api.Group("/loyalty-customers")
		customers.GET("/:id", customerHandler.GetCustomer)
		customers.GET("/:id/history", customerHandler.GetCustomerHistory)
	}
}

func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
