package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/genhealth/genhealth/internal/config"
	"github.com/genhealth/genhealth/internal/domain/activitylog"
	"github.com/genhealth/genhealth/internal/domain/intake"
	"github.com/genhealth/genhealth/internal/domain/order"
	"github.com/genhealth/genhealth/internal/extract"
	"github.com/genhealth/genhealth/internal/platform/db"
	"github.com/genhealth/genhealth/internal/platform/middleware"
)

// activityLogRecorder adapts the activity log service to the audit
// middleware's recorder interface.
type activityLogRecorder struct {
	svc *activitylog.Service
}

func (r *activityLogRecorder) RecordActivity(ctx context.Context, entry middleware.ActivityEntry) error {
	details := entry.Details
	return r.svc.Record(ctx, &activitylog.Entry{
		OrderID:  entry.OrderID,
		Action:   entry.Action,
		Endpoint: entry.Endpoint,
		Method:   entry.Method,
		Details:  &details,
	})
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "genhealth-server",
		Short: "GenHealth order intake API server",
	}

	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, db.Config{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure schema")
	}

	// Services
	orderSvc := order.NewService(order.NewRepo(pool))
	activitySvc := activitylog.NewService(activitylog.NewRepo(pool))

	var ocrEngine extract.Engine
	if cfg.OCREnabled {
		ocrEngine = extract.NewTesseractEngine(extract.OCRConfig{
			Pdftoppm:  cfg.OCRPdftoppm,
			Tesseract: cfg.OCRTesseract,
			DPI:       cfg.OCRDPI,
			Timeout:   cfg.OCRTimeout(),
		}, logger)
	}
	extractor := extract.NewExtractor(ocrEngine, logger)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Pre(echomw.RemoveTrailingSlash())

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	e.Use(middleware.Activity(logger, &activityLogRecorder{svc: activitySvc}))

	// Root status endpoint, exempt from the audit trail.
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"message": "GenHealth API is running!",
			"endpoints": map[string]string{
				"orders":        "/orders",
				"upload":        "/upload",
				"activity_logs": "/activity-logs",
			},
		})
	})

	// DB health check endpoint
	e.GET("/health/db", db.HealthHandler(pool))

	// Domain routes
	order.NewHandler(orderSvc).RegisterRoutes(e)
	activitylog.NewHandler(activitySvc).RegisterRoutes(e)
	intake.NewHandler(extractor, orderSvc, cfg.UploadMaxBytes, logger).RegisterRoutes(e)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
