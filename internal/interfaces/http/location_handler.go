package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-patio/internal/application/inventory"
)

// LocationHandler maneja las lecturas de ubicaciones del patio.
type LocationHandler struct {
	uc *inventory.UseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *inventory.UseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// List devuelve las ubicaciones ordenadas por zona/fila/rack.
func (h *LocationHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.Locations(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"locations": list})
}
