package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	amhttp "asset-manager/internal/assetmanager/adapter/http"
	"asset-manager/internal/assetmanager/config"
	authconfig "asset-manager/internal/auth/config"
	"asset-manager/internal/di"
	"asset-manager/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the asset manager REST server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	authCfg, err := authconfig.LoadConfig()
	if err != nil {
		return err
	}
	appLogger.Info("Application configuration loaded successfully")

	container := di.NewContainer(cfg, authCfg, appLogger)
	defer func() {
		if err := container.Close(); err != nil {
			appLogger.Errorf("Failed to close container: %v", err)
		}
	}()

	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = container.Initialize(initCtx)
	cancel()
	if err != nil {
		return err
	}
	appLogger.WithFields(map[string]interface{}{
		"servers":      cfg.ServerNames(),
		"store":        cfg.StoreType,
		"auth_enabled": container.AuthModule.Enabled(),
	}).Info("Asset manager initialized")

	app := newApp(container, appLogger)

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	if container.EventStore != nil {
		go container.OutTopic.RunRetention(runCtx, cfg.ServerNames(), cfg.Redis.EventRetention, cfg.Redis.RetentionInterval)
	}

	serverShutdown := make(chan error, 1)
	go func() {
		serverShutdown <- app.Listen(cfg.Address())
	}()
	appLogger.Infof("Starting HTTP server on %s", cfg.Address())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverShutdown:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-quit:
		appLogger.Infof("Received shutdown signal: %v", sig)
		stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLogger.Errorf("Server forced to shutdown: %v", err)
		}
		appLogger.Info("HTTP server stopped")
	}
	return nil
}

// newApp builds the fiber application for an initialized container.
func newApp(container *di.Container, log logger.Logger) *fiber.App {
	cfg := container.Config
	app := fiber.New(fiber.Config{
		AppName:      "Asset Manager",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			if code >= fiber.StatusInternalServerError {
				log.Errorf("HTTP Error: %v", err)
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	middleware := container.AuthModule.GetMiddleware()
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.CORS(cfg.CORSAllowOrigins))
	if cfg.RateLimitMax > 0 {
		app.Use(middleware.RateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow))
	}

	guards := container.AuthModule.Guards()
	amhttp.NewHealthHandler(container.HealthChecks()...).RegisterRoutes(app)
	amhttp.NewServices(container.Servers, log).RegisterRoutes(app, guards...)
	amhttp.NewOutTopicHandler(container.OutTopic, container.Servers, log).RegisterRoutes(app, guards...)

	return app
}
