package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-patio/internal/domain/repository"
)

// DashboardHandler expone los agregados del tablero de oficina. Son
// lecturas directas al remoto, sin respaldo de caché: el tablero es una
// vista de oficina, no una pantalla de patio.
type DashboardHandler struct {
	repo repository.DashboardRepository
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(repo repository.DashboardRepository) *DashboardHandler {
	return &DashboardHandler{repo: repo}
}

// KPIs devuelve los indicadores principales del patio.
func (h *DashboardHandler) KPIs(c *fiber.Ctx) error {
	summary, err := h.repo.KPISummary()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// InventoryByType devuelve el inventario in_yard agrupado por tipo.
func (h *DashboardHandler) InventoryByType(c *fiber.Ctx) error {
	rows, err := h.repo.InventoryByType()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"inventory": rows})
}

// YardOverview devuelve la utilización de cada ubicación del patio.
func (h *DashboardHandler) YardOverview(c *fiber.Ctx) error {
	locations, err := h.repo.YardOverview()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"locations": locations})
}
