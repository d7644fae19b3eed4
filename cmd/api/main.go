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
	"github.com/sathler/bomlink/internal/application/auth"
	"github.com/sathler/bomlink/internal/application/bomitems"
	"github.com/sathler/bomlink/internal/application/importing"
	apprfq "github.com/sathler/bomlink/internal/application/rfq"
	"github.com/sathler/bomlink/internal/application/usecase"
	"github.com/sathler/bomlink/internal/infrastructure/excel"
	"github.com/sathler/bomlink/internal/infrastructure/mail"
	"github.com/sathler/bomlink/internal/infrastructure/ocr"
	infrapdf "github.com/sathler/bomlink/internal/infrastructure/pdf"
	"github.com/sathler/bomlink/internal/infrastructure/postgres"
	httpRouter "github.com/sathler/bomlink/internal/interfaces/http"
	"github.com/sathler/bomlink/pkg/config"
	"github.com/sathler/bomlink/pkg/logger"
	"github.com/sathler/bomlink/pkg/metrics"
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

	partRepo := postgres.NewPartRepository(pool)
	manufacturerRepo := postgres.NewManufacturerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	rfqRepo := postgres.NewRFQRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	partUC := usecase.NewPartUseCase(partRepo)
	manufacturerUC := usecase.NewManufacturerUseCase(manufacturerRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, manufacturerRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	jobUC := usecase.NewJobUseCase(jobRepo, customerRepo)
	bomUC := usecase.NewBOMUseCase(bomRepo, customerRepo, jobRepo)
	bomItemsUC := bomitems.NewUseCase(txRunner)

	// OCR es opcional; sin endpoint configurado la importación por OCR
	// responde error de configuración.
	var extractor importing.TextExtractor
	if cfg.OCR.Enabled() {
		extractor = ocr.NewAzureService(
			cfg.OCR.Endpoint, cfg.OCR.Key,
			time.Duration(cfg.OCR.PollIntervalMS)*time.Millisecond,
			cfg.OCR.MaxPolls,
		)
	} else {
		log.Warn().Msg("OCR sin configurar; la importación por OCR queda deshabilitada")
	}
	importUC := importing.NewUseCase(txRunner, extractor)

	excelBuilder := excel.NewBuilder()
	pdfGenerator := infrapdf.NewRFQGenerator()

	// SMTP es opcional; sin host configurado el envío de RFQs queda
	// deshabilitado pero el resto del ciclo de vida funciona.
	var mailer apprfq.Mailer
	if cfg.SMTP.Enabled() {
		mailer = mail.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	} else {
		log.Warn().Msg("SMTP sin configurar; el envío de RFQs queda deshabilitado")
	}
	rfqUC := apprfq.NewUseCase(txRunner, bomRepo, rfqRepo, supplierRepo, userRepo, mailer, excelBuilder)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	m := metrics.New()

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
		Title:    "BOMLink API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		PartUC:         partUC,
		ManufacturerUC: manufacturerUC,
		SupplierUC:     supplierUC,
		CustomerUC:     customerUC,
		JobUC:          jobUC,
		BOMUC:          bomUC,
		BOMItemsUC:     bomItemsUC,
		ImportUC:       importUC,
		RFQUC:          rfqUC,
		AuthUC:         authUC,
		ExcelBuilder:   excelBuilder,
		PDFGenerator:   pdfGenerator,
		Metrics:        m,
		JWTSecret:      cfg.JWT.Secret,
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
