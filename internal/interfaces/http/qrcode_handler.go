package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-patio/internal/application/dto"
	"github.com/jhoicas/Inventario-patio/internal/application/qrcode"
)

// QRCodeHandler maneja los códigos QR imprimibles del patio.
type QRCodeHandler struct {
	uc *qrcode.UseCase
}

// NewQRCodeHandler construye el handler.
func NewQRCodeHandler(uc *qrcode.UseCase) *QRCodeHandler {
	return &QRCodeHandler{uc: uc}
}

// List devuelve todos los códigos generados.
func (h *QRCodeHandler) List(c *fiber.Ctx) error {
	codes, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"qr_codes": codes})
}

// BatchCreate genera un lote de códigos nuevos.
func (h *QRCodeHandler) BatchCreate(c *fiber.Ctx) error {
	var in struct {
		Count int `json:"count"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	codes, err := h.uc.BatchCreate(c.Context(), in.Count)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"qr_codes": codes})
}

// GetByID devuelve el código y, si está vinculado, el material asociado.
func (h *QRCodeHandler) GetByID(c *fiber.Ctx) error {
	qr, material, err := h.uc.Detail(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"qr_code": qr, "material": material})
}
