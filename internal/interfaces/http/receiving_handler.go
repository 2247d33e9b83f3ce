package http

import (
	"encoding/base64"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-patio/internal/application/dto"
	"github.com/jhoicas/Inventario-patio/internal/application/receiving"
	syncapp "github.com/jhoicas/Inventario-patio/internal/application/sync"
	"github.com/jhoicas/Inventario-patio/internal/domain/entity"
)

// ReceivingHandler maneja la recepción de material en el patio.
type ReceivingHandler struct {
	uc         *receiving.UseCase
	monitor    *syncapp.Monitor
	dispatcher *syncapp.Dispatcher
}

// NewReceivingHandler construye el handler.
func NewReceivingHandler(uc *receiving.UseCase, monitor *syncapp.Monitor, dispatcher *syncapp.Dispatcher) *ReceivingHandler {
	return &ReceivingHandler{uc: uc, monitor: monitor, dispatcher: dispatcher}
}

// GetByID devuelve el detalle de una recepción.
func (h *ReceivingHandler) GetByID(c *fiber.Ctx) error {
	record, err := h.uc.RecordByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"record": record})
}

// Submit registra una recepción. Con conexión ejecuta la secuencia completa
// (registro, material, fotos) y devuelve el id creado; sin conexión encola
// la recepción sin fotos para el próximo drenado.
func (h *ReceivingHandler) Submit(c *fiber.Ctx) error {
	var in dto.ReceivingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	payload := entity.ReceivingPayload{
		QRCodeValue:    in.QRCodeValue,
		Status:         in.Status,
		MaterialType:   in.MaterialType,
		Size:           in.Size,
		Grade:          in.Grade,
		Qty:            in.Qty,
		Weight:         in.Weight,
		Description:    in.Description,
		Spec:           in.Spec,
		Vendor:         in.Vendor,
		PONumber:       in.PONumber,
		DeliveryTicket: in.DeliveryTicket,
		Carrier:        in.Carrier,
		Condition:      in.Condition,
		DamageNotes:    in.DamageNotes,
		InspectionPass: in.InspectionPass,
		HasException:   in.HasException,
		ExceptionType:  in.ExceptionType,
		LocationID:     in.LocationID,
		CreatedBy:      in.CreatedBy,
	}

	if h.monitor.Online() {
		photos := make([]receiving.PhotoInput, 0, len(in.Photos))
		for _, p := range in.Photos {
			data, err := base64.StdEncoding.DecodeString(p.Data)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "foto no es base64 válido"})
			}
			photos = append(photos, receiving.PhotoInput{Data: data, PhotoType: p.PhotoType})
		}
		recordID, err := h.uc.Submit(c.Context(), receiving.SubmitInput{ReceivingPayload: payload, Photos: photos})
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"record_id": recordID, "queued": false})
	}

	action := &entity.QueuedAction{Kind: entity.ActionKindReceiving, Receiving: &payload}
	queued, err := h.dispatcher.EnqueueOrExecute(c.Context(), action)
	if err != nil {
		return respondError(c, err)
	}
	if queued {
		return c.Status(fiber.StatusAccepted).JSON(dto.MutationResponse{
			Queued:  true,
			Message: "sin conexión; recepción encolada sin fotos",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MutationResponse{Queued: false, Message: "recepción registrada"})
}
