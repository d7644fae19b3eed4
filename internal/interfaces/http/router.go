package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/sathler/bomlink/internal/application/auth"
	"github.com/sathler/bomlink/internal/application/bomitems"
	"github.com/sathler/bomlink/internal/application/importing"
	"github.com/sathler/bomlink/internal/application/rfq"
	"github.com/sathler/bomlink/internal/application/usecase"
	"github.com/sathler/bomlink/internal/domain/entity"
	"github.com/sathler/bomlink/internal/infrastructure/excel"
	"github.com/sathler/bomlink/internal/infrastructure/pdf"
	"github.com/sathler/bomlink/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PartUC         *usecase.PartUseCase
	ManufacturerUC *usecase.ManufacturerUseCase
	SupplierUC     *usecase.SupplierUseCase
	CustomerUC     *usecase.CustomerUseCase
	JobUC          *usecase.JobUseCase
	BOMUC          *usecase.BOMUseCase
	BOMItemsUC     *bomitems.UseCase
	ImportUC       *importing.UseCase
	RFQUC          *rfq.UseCase
	AuthUC         *auth.UseCase
	ExcelBuilder   *excel.Builder
	PDFGenerator   *pdf.RFQGenerator
	Metrics        *metrics.Metrics
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	admin := RequireRole(entity.RoleAdmin)

	// Catálogo: partes (protegido; borrado solo admin)
	parts := protected.Group("/parts")
	partHandler := NewPartHandler(deps.PartUC)
	parts.Post("/", partHandler.Create)
	parts.Get("/", partHandler.List)
	parts.Get("/:id", partHandler.GetByID)
	parts.Put("/:id", partHandler.Update)
	parts.Delete("/:id", admin, partHandler.Delete)

	// Catálogo: fabricantes
	manufacturers := protected.Group("/manufacturers")
	manufacturerHandler := NewManufacturerHandler(deps.ManufacturerUC)
	manufacturers.Post("/", manufacturerHandler.Create)
	manufacturers.Get("/", manufacturerHandler.List)
	manufacturers.Get("/:id", manufacturerHandler.GetByID)
	manufacturers.Put("/:id", manufacturerHandler.Update)
	manufacturers.Delete("/:id", admin, manufacturerHandler.Delete)

	// Catálogo: proveedores y sus mapeos de fabricante
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", admin, supplierHandler.Delete)
	suppliers.Get("/:id/manufacturers", supplierHandler.ListMappings)
	suppliers.Post("/:id/manufacturers/:manufacturerId", supplierHandler.AttachManufacturer)
	suppliers.Delete("/:id/manufacturers/:manufacturerId", supplierHandler.DetachManufacturer)

	// Catálogo: clientes
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", admin, customerHandler.Delete)

	// Trabajos
	jobs := protected.Group("/jobs")
	jobHandler := NewJobHandler(deps.JobUC)
	jobs.Post("/", jobHandler.Create)
	jobs.Get("/", jobHandler.List)
	jobs.Get("/:id", jobHandler.GetByID)
	jobs.Put("/:id", jobHandler.Update)
	jobs.Delete("/:id", admin, jobHandler.Delete)

	// BOMs: cabecera, exportaciones, líneas e importación
	boms := protected.Group("/boms")
	bomHandler := NewBOMHandler(deps.BOMUC, deps.ExcelBuilder)
	boms.Post("/", bomHandler.Create)
	boms.Get("/", bomHandler.List)
	boms.Get("/:id", bomHandler.GetByID)
	boms.Put("/:id", bomHandler.Update)
	boms.Delete("/:id", bomHandler.Delete)
	boms.Get("/:id/export/csv", bomHandler.ExportCSV)
	boms.Get("/:id/export/xlsx", bomHandler.ExportXLSX)

	bomItemHandler := NewBOMItemHandler(deps.BOMItemsUC, deps.ImportUC, deps.Metrics)
	boms.Post("/:id/items", bomItemHandler.AddItem)
	boms.Post("/:id/import/csv", bomItemHandler.ImportCSV)
	boms.Post("/:id/import/xlsx", bomItemHandler.ImportXLSX)
	boms.Post("/:id/import/ocr", bomItemHandler.ImportOCR)

	items := protected.Group("/bom-items")
	items.Put("/:itemId", bomItemHandler.UpdateItem)
	items.Delete("/:itemId", bomItemHandler.DeleteItem)

	drafts := protected.Group("/draft-items")
	drafts.Post("/:draftId/confirm", bomItemHandler.ConfirmDraft)
	drafts.Delete("/:draftId", bomItemHandler.RejectDraft)

	// RFQs: generación, ciclo de vida y exportaciones
	rfqHandler := NewRFQHandler(deps.RFQUC, deps.ExcelBuilder, deps.PDFGenerator, deps.Metrics)
	boms.Post("/:id/rfqs", rfqHandler.Generate)

	rfqs := protected.Group("/rfqs")
	rfqs.Get("/", rfqHandler.List)
	rfqs.Get("/:id", rfqHandler.GetByID)
	rfqs.Put("/:id", rfqHandler.Update)
	rfqs.Delete("/:id", rfqHandler.Delete)
	rfqs.Put("/:id/items", rfqHandler.UpdateItems)
	rfqs.Delete("/:id/items/:itemId", rfqHandler.DeleteItem)
	rfqs.Post("/:id/send", rfqHandler.Send)
	rfqs.Post("/:id/receive", rfqHandler.MarkReceived)
	rfqs.Post("/:id/cancel", rfqHandler.MarkCanceled)
	rfqs.Get("/:id/export/csv", rfqHandler.ExportCSV)
	rfqs.Get("/:id/export/xlsx", rfqHandler.ExportXLSX)
	rfqs.Get("/:id/export/pdf", rfqHandler.ExportPDF)
}
