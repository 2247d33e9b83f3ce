package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-patio/internal/application/dto"
	"github.com/jhoicas/Inventario-patio/internal/application/receiving"
)

// ExceptionHandler expone la bandeja de excepciones de recepción y su
// resolución desde oficina.
type ExceptionHandler struct {
	uc *receiving.UseCase
}

// NewExceptionHandler construye el handler.
func NewExceptionHandler(uc *receiving.UseCase) *ExceptionHandler {
	return &ExceptionHandler{uc: uc}
}

// List devuelve las excepciones abiertas; con ?resolved=true incluye
// también las resueltas.
func (h *ExceptionHandler) List(c *fiber.Ctx) error {
	includeResolved := c.Query("resolved") == "true"
	exceptions, err := h.uc.Exceptions(c.Context(), includeResolved)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"exceptions": exceptions})
}

// Resolve cierra la excepción de una recepción con la disposición dada.
func (h *ExceptionHandler) Resolve(c *fiber.Ctx) error {
	var in dto.ResolveExceptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	id := c.Params("id")
	if err := h.uc.ResolveException(c.Context(), id, in.Resolution, in.ResolvedBy); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"record_id": id, "resolved": true, "resolution": in.Resolution})
}
