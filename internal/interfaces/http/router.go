package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-patio/internal/application/inventory"
	"github.com/jhoicas/Inventario-patio/internal/application/qrcode"
	"github.com/jhoicas/Inventario-patio/internal/application/receiving"
	syncapp "github.com/jhoicas/Inventario-patio/internal/application/sync"
	"github.com/jhoicas/Inventario-patio/internal/domain/repository"
	"github.com/jhoicas/Inventario-patio/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventoryUC   *inventory.UseCase
	ReceivingUC   *receiving.UseCase
	QRCodeUC      *qrcode.UseCase
	AuditRepo     repository.AuditRepository
	DashboardRepo repository.DashboardRepository
	Cache         *syncapp.Cache
	Queue         *syncapp.Queue
	Monitor       *syncapp.Monitor
	Manager       *syncapp.Manager
	Dispatcher    *syncapp.Dispatcher
	Log           *logger.Logger
}

// Router registra las rutas de la frontera local con la UI.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Materiales: lecturas con respaldo de caché y mutaciones vía dispatcher
	materials := api.Group("/materials")
	materialHandler := NewMaterialHandler(deps.InventoryUC, deps.Cache, deps.Dispatcher, deps.Log)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Get("/:id/movements", materialHandler.Movements)
	materials.Get("/:id/issues", materialHandler.Issues)
	materials.Get("/:id/shipments", materialHandler.Shipments)
	materials.Post("/:id/transfer", materialHandler.Transfer)
	materials.Post("/:id/issue", materialHandler.Issue)
	materials.Post("/:id/ship", materialHandler.Ship)

	// Recepción de material
	receivingHandler := NewReceivingHandler(deps.ReceivingUC, deps.Monitor, deps.Dispatcher)
	api.Post("/receiving", receivingHandler.Submit)
	api.Get("/receiving/:id", receivingHandler.GetByID)

	// Excepciones de recepción (bandeja de oficina)
	exceptions := api.Group("/exceptions")
	exceptionHandler := NewExceptionHandler(deps.ReceivingUC)
	exceptions.Get("/", exceptionHandler.List)
	exceptions.Post("/:id/resolve", exceptionHandler.Resolve)

	// Tablero de oficina
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardRepo)
	dashboard.Get("/kpis", dashboardHandler.KPIs)
	dashboard.Get("/inventory-by-type", dashboardHandler.InventoryByType)
	dashboard.Get("/yard", dashboardHandler.YardOverview)

	// Códigos QR
	qrCodes := api.Group("/qr-codes")
	qrHandler := NewQRCodeHandler(deps.QRCodeUC)
	qrCodes.Get("/", qrHandler.List)
	qrCodes.Post("/batch", qrHandler.BatchCreate)
	qrCodes.Get("/:id", qrHandler.GetByID)

	// Ubicaciones
	locationHandler := NewLocationHandler(deps.InventoryUC)
	api.Get("/locations", locationHandler.List)

	// Log de actividad
	auditHandler := NewAuditHandler(deps.AuditRepo)
	api.Get("/activity", auditHandler.List)

	// Sincronización
	syncGroup := api.Group("/sync")
	syncHandler := NewSyncHandler(deps.Monitor, deps.Manager, deps.Queue)
	syncGroup.Get("/status", syncHandler.Status)
	syncGroup.Post("/run", syncHandler.Run)
}
