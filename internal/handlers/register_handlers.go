package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/wrsoft/branchledger/internal/core/ports/services"
	"github.com/wrsoft/branchledger/internal/middleware"
	"github.com/wrsoft/branchledger/internal/platform/config"
	"github.com/wrsoft/branchledger/internal/realtime"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	hub *realtime.Hub,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, services)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, hub)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	hub *realtime.Hub,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, services.Auth))

	RegisterTransactionRoutes(v1, services.Transaction)
	registerInventoryRoutes(v1, services.Inventory)
	registerDebtRoutes(v1, services.Debt)
	registerReferenceRoutes(v1, services)

	// Live posting feed for dashboards
	v1.GET("/ws", hub.ServeWS)
}
