package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-patio/internal/domain/repository"
)

// AuditHandler expone el log de actividad global del patio.
type AuditHandler struct {
	repo repository.AuditRepository
}

// NewAuditHandler construye el handler.
func NewAuditHandler(repo repository.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// List devuelve las entradas más recientes del log (por defecto 50).
func (h *AuditHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	entries, err := h.repo.List(limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"entries": entries})
}
