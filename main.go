package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcatania72/CRM-System-NEW/internal/auth"
	"github.com/mcatania72/CRM-System-NEW/internal/config"
	"github.com/mcatania72/CRM-System-NEW/internal/handler"
	"github.com/mcatania72/CRM-System-NEW/internal/infrastructure"
	"github.com/mcatania72/CRM-System-NEW/internal/observability"
	"github.com/mcatania72/CRM-System-NEW/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	db, err := infrastructure.ConnectDatabase(cfg)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	if err := infrastructure.MigrateAllSchemas(db); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	if err := infrastructure.EnsureDefaultAdmin(db); err != nil {
		logger.Fatal("default admin setup failed", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	tokens := auth.NewService(cfg.JWTSecret, cfg.JWTTTL)

	users := service.NewUserService(db)
	customers := service.NewCustomerService(db)
	opportunities := service.NewOpportunityService(db)
	activities := service.NewActivityService(db)
	interactions := service.NewInteractionService(db)
	dashboard := service.NewDashboardService(db)

	authz, err := service.NewAuthorizationService()
	if err != nil {
		logger.Fatal("authorization setup failed", zap.Error(err))
	}

	exposeErrors := !cfg.IsProduction()
	handlers := &handler.Handlers{
		Auth:          handler.NewAuthHandler(users, tokens, logger, exposeErrors),
		Customers:     handler.NewCustomerHandler(customers, logger, exposeErrors),
		Opportunities: handler.NewOpportunityHandler(opportunities, logger, exposeErrors),
		Activities:    handler.NewActivityHandler(activities, logger, exposeErrors),
		Interactions:  handler.NewInteractionHandler(interactions, logger, exposeErrors),
		Dashboard:     handler.NewDashboardHandler(dashboard, logger, exposeErrors),
	}

	router := handler.SetupRouter(cfg, logger, metrics, tokens, users, authz, handlers)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			zap.Int("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("db_driver", cfg.DBDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
