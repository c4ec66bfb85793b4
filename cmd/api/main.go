package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"relatosapi/docs"
	"relatosapi/internal/auth"
	"relatosapi/internal/config"
	"relatosapi/internal/database"
	"relatosapi/internal/database/migration"
	handlers "relatosapi/internal/http/handler"
	"relatosapi/internal/http/middleware"
	"relatosapi/internal/logging"
	"relatosapi/internal/otel"
	"relatosapi/internal/repository/postgres"
	"relatosapi/internal/service"
	"relatosapi/internal/storage"
)

// @title Relatos API
// @version 1.0
// @description Citizen reports about public transit service.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	logging.Init(os.Stdout, cfg.LogLevel, time.Local)
	log := logging.Component("main")

	// Refuse to start without the shared secret or a database
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	gate, err := auth.NewGate(cfg.APIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build access gate")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Str("db_host", database.Host(cfg.Database)).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, database.Host(cfg.Database)); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// Attachment payloads stay in the database unless the s3 backend is selected
	var objStore storage.Storage
	if cfg.Attachments.Backend == config.BackendS3 {
		objStore, err = storage.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize object storage")
		}
	}

	reportRepo := postgres.NewReportPostgres(db)
	reportSvc := service.NewReportService(reportRepo, objStore, service.Options{
		NewestLimit:  cfg.NewestLimit,
		QueryTimeout: cfg.Database.QueryTimeout(),
	})

	prom, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	app := handlers.NewApp(cfg.BodyLimit())

	// Register global middleware
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: strings.Join([]string{
			fiber.HeaderOrigin,
			fiber.HeaderContentType,
			fiber.HeaderAccept,
			middleware.APIKeyHeader,
			middleware.RequestIDHeader,
		}, ", "),
	}))
	app.Use(middleware.Logger())
	app.Use(prom.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, reportSvc, gate)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("event", "server_start").Str("addr", addr).Str("attachment_backend", cfg.Attachments.Backend).Send()
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	case <-ctx.Done():
		log.Info().Str("event", "server_shutdown").Send()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown")
	}
}
