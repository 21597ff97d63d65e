package handler

import (
	"net/http"

	"github.com/mcatania72/CRM-System-NEW/internal/auth"
	"github.com/mcatania72/CRM-System-NEW/internal/config"
	"github.com/mcatania72/CRM-System-NEW/internal/middleware"
	"github.com/mcatania72/CRM-System-NEW/internal/observability"
	"github.com/mcatania72/CRM-System-NEW/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handlers bundles every request handler the router mounts.
type Handlers struct {
	Auth          *AuthHandler
	Customers     *CustomerHandler
	Opportunities *OpportunityHandler
	Activities    *ActivityHandler
	Interactions  *InteractionHandler
	Dashboard     *DashboardHandler
}

// SetupRouter builds the gin engine with all middleware and routes mounted.
func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	metrics *observability.Metrics,
	tokens *auth.Service,
	users service.UserService,
	authz *service.AuthorizationService,
	h *Handlers,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger, metrics))

	limiter := middleware.NewRateLimiter(cfg, metrics)
	router.Use(limiter.Handler())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(tokens, users))
	{
		protected.GET("/auth/profile", h.Auth.Profile)
		protected.GET("/auth/users", middleware.RequirePermission(authz, "users", "read"), h.Auth.Users)

		customers := protected.Group("/customers")
		{
			customers.GET("", h.Customers.List)
			customers.GET("/stats", h.Customers.Stats)
			customers.GET("/:id", h.Customers.Get)
			customers.POST("", h.Customers.Create)
			customers.PUT("/:id", h.Customers.Update)
			customers.DELETE("/:id", h.Customers.Delete)
		}

		opportunities := protected.Group("/opportunities")
		{
			opportunities.GET("", h.Opportunities.List)
			opportunities.GET("/stats", h.Opportunities.Stats)
			opportunities.GET("/:id", h.Opportunities.Get)
			opportunities.POST("", h.Opportunities.Create)
			opportunities.PUT("/:id", h.Opportunities.Update)
			opportunities.DELETE("/:id", h.Opportunities.Delete)
		}

		activities := protected.Group("/activities")
		{
			activities.GET("", h.Activities.List)
			activities.GET("/my-activities", h.Activities.Mine)
			activities.GET("/upcoming", h.Activities.Upcoming)
			activities.GET("/:id", h.Activities.Get)
			activities.POST("", h.Activities.Create)
			activities.PUT("/:id", h.Activities.Update)
			activities.DELETE("/:id", h.Activities.Delete)
		}

		interactions := protected.Group("/interactions")
		{
			interactions.GET("", h.Interactions.List)
			interactions.GET("/recent", h.Interactions.Recent)
			interactions.GET("/customer/:customerId", h.Interactions.ByCustomer)
			interactions.GET("/:id", h.Interactions.Get)
			interactions.POST("", h.Interactions.Create)
			interactions.PUT("/:id", h.Interactions.Update)
			interactions.DELETE("/:id", h.Interactions.Delete)
		}

		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("/stats", h.Dashboard.Stats)
			dashboard.GET("/reports", middleware.RequirePermission(authz, "reports", "read"), h.Dashboard.Reports)
		}
	}

	return router
}
