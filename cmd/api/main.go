package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/gametech-stock/internal/application/auth"
	appinv "github.com/jhoicas/gametech-stock/internal/application/inventory"
	"github.com/jhoicas/gametech-stock/internal/domain/inventory"
	"github.com/jhoicas/gametech-stock/internal/infrastructure/events"
	"github.com/jhoicas/gametech-stock/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/gametech-stock/internal/infrastructure/pdf"
	"github.com/jhoicas/gametech-stock/internal/infrastructure/postgres"
	"github.com/jhoicas/gametech-stock/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/gametech-stock/internal/interfaces/http"
	"github.com/jhoicas/gametech-stock/pkg/config"
	"github.com/jhoicas/gametech-stock/pkg/jwt"
	"github.com/jhoicas/gametech-stock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	mode, err := inventory.ParseRebuildMode(cfg.Stock.RebuildMode)
	if err != nil {
		log.Fatal().Err(err).Msg("STOCK_REBUILD_MODE")
	}

	sessOpts := []appinv.SessionOption{appinv.WithLogger(log.Component("stock"))}

	// Kafka es opcional: sin brokers los movimientos solo se guardan en la base.
	if cfg.Kafka.Enabled() {
		publisher, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.MovementsTopic, log.Component("kafka"))
		if err != nil {
			log.Fatal().Err(err).Strs("brokers", cfg.Kafka.Brokers).Msg("productor Kafka")
		}
		defer publisher.Close()
		sessOpts = append(sessOpts, appinv.WithPublisher(publisher))
	}

	userRepo := postgres.NewUserRepository(pool)
	repos := appinv.Repositories{
		Products:   postgres.NewProductRepository(pool),
		Movements:  postgres.NewMovementRepository(pool),
		Users:      userRepo,
		Warehouses: postgres.NewWarehouseRepository(pool),
		Tx:         postgres.NewTxRunner(pool),
	}
	session, report, err := appinv.Load(ctx, repos, appinv.LoadOptions{
		Mode:               mode,
		DefaultWarehouseID: cfg.Stock.DefaultWarehouseID,
	}, sessOpts...)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar stock")
	}
	if len(report.Skipped) > 0 {
		log.Warn().Int("skipped", len(report.Skipped)).Msg("hay movimientos descartados; revisar el log de movimientos")
	}

	encoding, err := export.ParseEncoding(cfg.Export.Encoding)
	if err != nil {
		log.Fatal().Err(err).Msg("EXPORT_ENCODING")
	}

	signer, err := jwt.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	if err != nil {
		log.Fatal().Err(err).Msg("JWT_SECRET")
	}
	authUC := auth.NewAuthUseCase(userRepo, session, signer)

	jobs := scheduler.New(cfg.Scheduler, session, log.Component("scheduler"))
	if err := jobs.Start(); err != nil {
		log.Fatal().Err(err).Msg("scheduler")
	}
	defer jobs.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "GameTech Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Session: session,
		AuthUC:  authUC,
		CSV:     export.NewCSVExporter(encoding),
		PDF:     infrapdf.NewStockReportGenerator(cfg.App.Name),
		Tokens:  signer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
