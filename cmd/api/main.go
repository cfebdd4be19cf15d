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

	"github.com/jhoicas/opname-api/internal/application/opname"
	"github.com/jhoicas/opname-api/internal/application/session"
	"github.com/jhoicas/opname-api/internal/application/verification"
	"github.com/jhoicas/opname-api/internal/infrastructure/odoo"
	infrapdf "github.com/jhoicas/opname-api/internal/infrastructure/pdf"
	"github.com/jhoicas/opname-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/opname-api/internal/interfaces/http"
	"github.com/jhoicas/opname-api/pkg/config"
	"github.com/jhoicas/opname-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	scanRepo := postgres.NewScanRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	adjustmentRepo := postgres.NewAdjustmentRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	erpClient := odoo.NewClient(cfg.Odoo)

	sessionUC := session.NewUseCase(sessionRepo, scanRepo, warehouseRepo)
	summaryUC := opname.NewSummaryUseCase(scanRepo, warehouseRepo, erpClient, log.Component("opname"))
	postUC := opname.NewPostUseCase(summaryUC, erpClient, log.Component("opname"))
	verificationUC := verification.NewUseCase(erpClient, adjustmentRepo, txRunner, log.Component("verification"))

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // el post al ERP puede tardar
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Opname API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SessionUC:      sessionUC,
		SummaryUC:      summaryUC,
		PostUC:         postUC,
		VerificationUC: verificationUC,
		PDFGen:         pdfGenerator,
		WarehouseRepo:  warehouseRepo,
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
