// Package routes wires handlers into the gin router.
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"quokkalist/internal/interfaces/http/handlers"
	"quokkalist/internal/interfaces/http/middleware"
	sharedconfig "quokkalist/internal/shared/config"
	"quokkalist/internal/shared/logger"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Billing *handlers.BillingHandler
	Vote    *handlers.VoteHandler
	Listing *handlers.ListingHandler
	Admin   *handlers.AdminHandler
}

// Setup builds the router with the full middleware chain and all routes.
func Setup(cfg *sharedconfig.ServerConfig, jwtSecret string, limiter middleware.Limiter, h Handlers, log logger.Interface) *gin.Engine {
	gin.SetMode(cfg.Mode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	// Webhook is signature-authenticated, not token-authenticated.
	api.POST("/billing/webhook", h.Billing.Webhook)

	// Public read endpoints.
	api.GET("/servers/:serverID/promotion", h.Listing.GetPromotion)
	api.GET("/servers/:serverID/stats", h.Listing.GetStats)
	api.POST("/servers/:serverID/stats",
		middleware.RateLimit(limiter, "stats", 60, time.Minute),
		h.Listing.TrackStat)

	auth := api.Group("")
	auth.Use(middleware.Auth(jwtSecret))
	{
		auth.POST("/servers/:serverID/vote",
			middleware.RateLimit(limiter, "vote", 10, time.Minute),
			h.Vote.Vote)

		auth.POST("/billing/checkout",
			middleware.RateLimit(limiter, "checkout", 10, time.Minute),
			h.Billing.CreateCheckout)
		auth.POST("/billing/promo/preview", h.Billing.PreviewPromoCode)
		auth.GET("/billing/orders", h.Billing.ListOrders)
		auth.GET("/billing/orders/session/:sessionID", h.Billing.GetOrderSummary)

		auth.GET("/promotions", h.Listing.ListMyWindows)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.Auth(jwtSecret), middleware.RequireAdmin())
	{
		admin.POST("/promo-codes", h.Admin.CreatePromoCode)
		admin.GET("/promo-codes", h.Admin.ListPromoCodes)
		admin.PATCH("/promo-codes/:id", h.Admin.SetPromoCodeActive)
		admin.POST("/promotions/gift", h.Admin.GiftWindow)
		admin.GET("/promotions", h.Admin.ListAllWindows)
		admin.GET("/orders", h.Admin.ListAllOrders)
	}

	return router
}
