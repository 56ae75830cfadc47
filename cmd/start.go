package cmd

import (
	"context"
	"fmt"
	"time"

	"nb-init/core/config"
	"nb-init/core/loader"
	"nb-init/core/logger"
	"nb-init/core/middleware/auth"
	"nb-init/core/middleware/rayid"
	"nb-init/feature/seed"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "nb-init/docs/swagger"
)

// @title nb-init API
// @version 1.0
// @description API for seeding NetBox from declarative documents.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the nb-init server",
	Long:  `Starts the HTTP server exposing seed runs, the run journal and the entity catalog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := interruptible(cmd.Context())
		defer stop()

		// 1. Load Configuration
		cfg, err := config.LoadConfig(configPath, config.WithFlag("server.port", cmd.Flags().Lookup("port")))
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Seed service (journal is optional)
		src, err := newSource(cfg)
		if err != nil {
			return err
		}
		svc := seed.NewService(seed.SessionConnector(cfg.NetBox, logg), src, openJournal(ctx, cfg, logg), cfg.Seed.Options(), logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 4. Initialize Feature Loader
		mgr := loader.NewManager(logg)
		mgr.Register(seed.NewFeature(svc))

		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		if !cfg.Server.IsProtected() {
			logg.Warn("No API key configured, the API is unprotected")
		}
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			return fmt.Errorf("failed to load features: %w", err)
		}

		// 6. Start Server
		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			errCh <- app.Listen(cfg.Server.Addr())
		}()

		// 7. Graceful Shutdown
		select {
		case err := <-errCh:
			svc.Close()
			return fmt.Errorf("server failed: %w", err)
		case <-ctx.Done():
		}

		logg.Info("Shutting down server...")
		timeout := time.Duration(cfg.Server.ShutdownSeconds) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logg.Warn("Server shutdown incomplete", zap.Error(err))
		}
		svc.Close()
		return nil
	},
}

func init() {
	startCmd.Flags().String("port", "8080", "HTTP listen port")
	RootCmd.AddCommand(startCmd)
}
