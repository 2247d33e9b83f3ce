package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-patio/internal/application/dto"
	"github.com/jhoicas/Inventario-patio/internal/application/inventory"
	syncapp "github.com/jhoicas/Inventario-patio/internal/application/sync"
	"github.com/jhoicas/Inventario-patio/internal/domain"
	"github.com/jhoicas/Inventario-patio/internal/domain/entity"
	"github.com/jhoicas/Inventario-patio/internal/domain/repository"
	"github.com/jhoicas/Inventario-patio/pkg/logger"
)

// MaterialHandler maneja las peticiones de la UI sobre materiales: listados
// y detalle con respaldo de caché, y las tres mutaciones que conservan
// cantidad (traslado, entrega, despacho) vía el dispatcher offline.
type MaterialHandler struct {
	uc         *inventory.UseCase
	cache      *syncapp.Cache
	dispatcher *syncapp.Dispatcher
	log        *logger.Logger
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *inventory.UseCase, cache *syncapp.Cache, dispatcher *syncapp.Dispatcher, log *logger.Logger) *MaterialHandler {
	return &MaterialHandler{uc: uc, cache: cache, dispatcher: dispatcher, log: log}
}

const materialsCacheKey = "materials"

// List devuelve el inventario del patio. Lectura read-through: se intenta
// el remoto y se refresca la caché; si el remoto no responde se sirve la
// instantánea local con stale según su ventana de frescura. Solo el listado
// sin filtros se cachea (es la vista que la UI necesita sin conexión).
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	filter := repository.MaterialFilter{
		Status:       c.Query("status"),
		MaterialType: c.Query("material_type"),
		Search:       c.Query("search"),
	}
	unfiltered := filter == repository.MaterialFilter{}

	list, err := h.uc.Materials(c.Context(), filter)
	if err == nil {
		if unfiltered {
			if cacheErr := h.cache.Set(materialsCacheKey, list); cacheErr != nil {
				h.log.Warn().Err(cacheErr).Msg("caché de materiales no actualizada")
			}
		}
		return c.JSON(fiber.Map{"materials": list, "stale": false})
	}
	if !errors.Is(err, domain.ErrRemoteUnavailable) || !unfiltered {
		return respondError(c, err)
	}

	var cached []*entity.MaterialView
	found, cacheErr := h.cache.Get(materialsCacheKey, &cached)
	if cacheErr != nil || !found {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"materials": cached, "stale": !h.cache.IsFresh(materialsCacheKey)})
}

// GetByID devuelve el detalle de un material, con el mismo respaldo de
// caché que el listado.
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	key := "material_" + id

	m, err := h.uc.MaterialByID(c.Context(), id)
	if err == nil {
		if cacheErr := h.cache.Set(key, m); cacheErr != nil {
			h.log.Warn().Err(cacheErr).Str("material_id", id).Msg("caché de detalle no actualizada")
		}
		return c.JSON(fiber.Map{"material": m, "stale": false})
	}
	if !errors.Is(err, domain.ErrRemoteUnavailable) {
		return respondError(c, err)
	}

	var cached entity.MaterialView
	found, cacheErr := h.cache.Get(key, &cached)
	if cacheErr != nil || !found {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"material": &cached, "stale": !h.cache.IsFresh(key)})
}

// Movements historial de traslados de un material (solo remoto).
func (h *MaterialHandler) Movements(c *fiber.Ctx) error {
	list, err := h.uc.MovementHistory(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"movements": list})
}

// Issues historial de entregas a obra de un material (solo remoto).
func (h *MaterialHandler) Issues(c *fiber.Ctx) error {
	list, err := h.uc.IssueHistory(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"issues": list})
}

// Shipments historial de despachos de un material (solo remoto).
func (h *MaterialHandler) Shipments(c *fiber.Ctx) error {
	list, err := h.uc.ShipmentHistory(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"shipments": list})
}

// Transfer traslada el material a otra ubicación, o encola el traslado si
// no hay conexión.
func (h *MaterialHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	action := &entity.QueuedAction{
		Kind: entity.ActionKindTransfer,
		Transfer: &entity.TransferPayload{
			MaterialID:     c.Params("id"),
			FromLocationID: in.FromLocationID,
			ToLocationID:   in.ToLocationID,
			MovedBy:        in.MovedBy,
			Reason:         in.Reason,
		},
	}
	return h.dispatch(c, action, "material trasladado")
}

// Issue entrega cantidad de un material a una obra, o encola la entrega.
func (h *MaterialHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	action := &entity.QueuedAction{
		Kind: entity.ActionKindIssue,
		Issue: &entity.IssuePayload{
			MaterialID: c.Params("id"),
			JobNumber:  in.JobNumber,
			WorkOrder:  in.WorkOrder,
			Quantity:   in.Quantity,
			IssuedBy:   in.IssuedBy,
		},
	}
	return h.dispatch(c, action, "material entregado")
}

// Ship despacha cantidad de un material fuera del patio, o encola el despacho.
func (h *MaterialHandler) Ship(c *fiber.Ctx) error {
	var in dto.ShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	action := &entity.QueuedAction{
		Kind: entity.ActionKindShipment,
		Shipment: &entity.ShipmentPayload{
			MaterialID:     c.Params("id"),
			Destination:    in.Destination,
			Carrier:        in.Carrier,
			TrackingNumber: in.TrackingNumber,
			Quantity:       in.Quantity,
			ShippedBy:      in.ShippedBy,
		},
	}
	return h.dispatch(c, action, "material despachado")
}

// dispatch ejecuta la acción contra el remoto o la encola según conectividad.
func (h *MaterialHandler) dispatch(c *fiber.Ctx, action *entity.QueuedAction, okMsg string) error {
	queued, err := h.dispatcher.EnqueueOrExecute(c.Context(), action)
	if err != nil {
		return respondError(c, err)
	}
	if queued {
		return c.Status(fiber.StatusAccepted).JSON(dto.MutationResponse{
			Queued:  true,
			Message: "sin conexión; acción encolada para sincronizar",
		})
	}
	return c.JSON(dto.MutationResponse{Queued: false, Message: okMsg})
}
