package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/playforge/wallet_marketplace_app/cmd/docs"
	portssvc "github.com/playforge/wallet_marketplace_app/internal/core/ports/services"
	"github.com/playforge/wallet_marketplace_app/internal/middleware"
	"github.com/playforge/wallet_marketplace_app/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerHomeRoutes(r)

	// Public authentication routes
	registerAuthRoutes(r, services)

	// Deposit and mint notifications arrive from the payment provider and the
	// asset pipeline, not a logged-in player, so they sit outside the JWT
	// group behind a shared-secret API key instead.
	webhooks := r.Group("/api/v1", middleware.APIKeyAuth(cfg.WebhookAPIKey))
	registerDepositRoutes(webhooks, services.Ledger)
	registerMintRoutes(webhooks, services.Marketplace)

	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	registerWalletRoutes(v1, services.Wallet, services.Ledger)
	registerTransferRoutes(v1, services.Wallet, services.Ledger, services.Fee)
	registerMarketplaceRoutes(v1, services.Marketplace, services.Wallet)
	registerReportingRoutes(v1, services.Reporting)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
