package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/vanagogh/mint-gateway/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Contract view endpoints (public read access)
		v1.GET("/status", handler.GetStatus)
		v1.GET("/eligibility", handler.GetEligibility)

		// Mint endpoints (requires authentication)
		v1.POST("/mint", middleware.Auth(authCfg), handler.PostMint)
		v1.GET("/mints", middleware.Auth(authCfg), handler.ListMints)

		// Asset endpoints (public read access)
		v1.GET("/assets", handler.ListAssets)
		v1.GET("/assets/:contract/:token_id", handler.GetAsset)

		// Transfer endpoint (requires authentication)
		v1.POST("/assets/transfer", middleware.Auth(authCfg), handler.PostTransfer)
	}
}
