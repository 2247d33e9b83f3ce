package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-patio/internal/application/dto"
	syncapp "github.com/jhoicas/Inventario-patio/internal/application/sync"
)

// SyncHandler expone el estado del subsistema de sincronización y permite
// disparar un drenado manual desde la UI.
type SyncHandler struct {
	monitor *syncapp.Monitor
	manager *syncapp.Manager
	queue   *syncapp.Queue
}

// NewSyncHandler construye el handler.
func NewSyncHandler(monitor *syncapp.Monitor, manager *syncapp.Manager, queue *syncapp.Queue) *SyncHandler {
	return &SyncHandler{monitor: monitor, manager: manager, queue: queue}
}

// Status devuelve conectividad, si hay drenado en curso y cuántas acciones
// siguen pendientes (el indicador "N acciones pendientes" de la UI).
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	pending, err := h.queue.Len()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SyncStatusResponse{
		Online:   h.monitor.Online(),
		Draining: h.manager.Draining(),
		Pending:  pending,
	})
}

// Run re-sondea la conectividad y dispara un drenado inmediato. Si ya hay
// uno en curso el disparo es un no-op y se devuelve el estado actual.
func (h *SyncHandler) Run(c *fiber.Ctx) error {
	h.monitor.Refresh(c.Context())
	if !h.monitor.Online() {
		pending, err := h.queue.Len()
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.SyncStatusResponse{
			Online:   false,
			Draining: false,
			Pending:  pending,
		})
	}
	res, err := h.manager.Drain(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}
