package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/opname-api/internal/application/opname"
	"github.com/jhoicas/opname-api/internal/application/session"
	"github.com/jhoicas/opname-api/internal/application/verification"
	"github.com/jhoicas/opname-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SessionUC      *session.UseCase
	SummaryUC      *opname.SummaryUseCase
	PostUC         *opname.PostUseCase
	VerificationUC *verification.UseCase
	PDFGen         opname.SummaryPDFGenerator
	WarehouseRepo  repository.WarehouseRepository
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Sesiones de opname y escaneos
	sessions := api.Group("/sessions")
	sessionHandler := NewSessionHandler(deps.SessionUC)
	sessions.Post("/", sessionHandler.Create)
	sessions.Get("/", sessionHandler.List)
	sessions.Get("/:id", sessionHandler.GetByID)
	sessions.Post("/:id/confirm", sessionHandler.Confirm)
	sessions.Post("/:id/scans", sessionHandler.AddScan)
	sessions.Get("/:id/scans", sessionHandler.ListScans)

	// Resumen no posteado y post al ERP
	opnameGroup := api.Group("/opname")
	opnameHandler := NewOpnameHandler(deps.SummaryUC, deps.PostUC, deps.PDFGen, deps.WarehouseRepo)
	opnameGroup.Get("/unposted", opnameHandler.Unposted)
	opnameGroup.Get("/unposted/pdf", opnameHandler.UnpostedPDF)
	opnameGroup.Post("/post", opnameHandler.Post)

	// Verificación contra el ERP
	verificationGroup := api.Group("/verification")
	verificationHandler := NewVerificationHandler(deps.VerificationUC)
	verificationGroup.Get("/", verificationHandler.List)
	verificationGroup.Put("/:line_id/total", verificationHandler.UpdateTotal)

	// Bodegas (lectura)
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseRepo)
	warehouses.Get("/", warehouseHandler.List)
}

// optionalWarehouseID lee warehouse_id del query; vacío devuelve nil.
func optionalWarehouseID(c *fiber.Ctx) (*int64, error) {
	raw := c.Query("warehouse_id")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
