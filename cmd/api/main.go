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

	"github.com/billmint/billmint-api/internal/application/auth"
	"github.com/billmint/billmint-api/internal/application/billing"
	"github.com/billmint/billmint-api/internal/application/usecase"
	infrapdf "github.com/billmint/billmint-api/internal/infrastructure/pdf"
	"github.com/billmint/billmint-api/internal/infrastructure/postgres"
	"github.com/billmint/billmint-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/billmint/billmint-api/internal/interfaces/http"
	"github.com/billmint/billmint-api/pkg/config"
	"github.com/billmint/billmint-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	businessRepo := postgres.NewBusinessRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	customerUC := billing.NewCustomerUseCase(customerRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	businessUC := usecase.NewBusinessUseCase(businessRepo)

	drafts := billing.NewDraftManager(customerRepo, productRepo, txRunner, cfg.Invoice.NumberPrefix)
	billUC := billing.NewBillUseCase(billRepo)

	pdfGenerator := infrapdf.NewInvoiceRenderer(infrapdf.Options{
		TaxRatePercent: cfg.Invoice.TaxRatePercent,
		CurrencyCode:   cfg.Invoice.CurrencyCode,
		CurrencySymbol: cfg.Invoice.CurrencySymbol,
	})
	invoiceUC := billing.NewInvoiceUseCase(billRepo, businessRepo, pdfGenerator, xmlexport.NewInvoiceXML())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // PDF rendering can be slow on large bills
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	registerSwagger(app, log, "./docs/swagger.json")

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CustomerUC: customerUC,
		ProductUC:  productUC,
		BusinessUC: businessUC,
		Drafts:     drafts,
		BillUC:     billUC,
		InvoiceUC:  invoiceUC,
		JWTSecret:  cfg.JWT.Secret,
		Limiter:    httpRouter.NewRateLimiter(20, 40),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}

// registerSwagger mounts the docs UI when the spec file is present. The
// middleware panics on a missing file before any request handler runs, so a
// missing spec only disables the docs route instead of killing the server.
func registerSwagger(app *fiber.App, log *logger.Logger, specPath string) {
	if _, err := os.Stat(specPath); err != nil {
		log.Warn().Str("path", specPath).Msg("swagger spec not found, docs UI disabled")
		return
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: specPath,
		Path:     "docs",
		Title:    "BillMint API",
	}))
}
