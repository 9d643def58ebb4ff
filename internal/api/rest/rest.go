package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes. auth guards every account route.
func SetupRoutes(router *gin.Engine, handler Handler, auth gin.HandlerFunc) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	accounts := v1.Group("/accounts/:account_number", auth)
	{
		accounts.GET("/user", handler.GetUser)
		accounts.GET("/portfolio", handler.GetPortfolio)
		accounts.GET("/transactions", handler.ListTransactions)
		accounts.GET("/watchlist", handler.GetWatchlist)
	}
}
