package sync

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-patio/internal/application/inventory"
	"github.com/jhoicas/Inventario-patio/internal/application/receiving"
	"github.com/jhoicas/Inventario-patio/internal/domain/entity"
)

// ActionExecutor despacha cada acción encolada a la operación de
// inventario correspondiente. El switch sobre Kind es exhaustivo: una
// variante nueva sin rama es un error en tiempo de replay, no un descarte
// silencioso.
type ActionExecutor struct {
	inventory *inventory.UseCase
	receiving *receiving.UseCase
}

// NewActionExecutor construye el ejecutor.
func NewActionExecutor(inv *inventory.UseCase, rec *receiving.UseCase) *ActionExecutor {
	return &ActionExecutor{inventory: inv, receiving: rec}
}

var _ Executor = (*ActionExecutor)(nil)

// Execute invoca la operación correspondiente con el payload almacenado.
func (e *ActionExecutor) Execute(ctx context.Context, action *entity.QueuedAction) error {
	switch action.Kind {
	case entity.ActionKindReceiving:
		_, err := e.receiving.Submit(ctx, receiving.SubmitInput{ReceivingPayload: *action.Receiving})
		return err
	case entity.ActionKindTransfer:
		p := action.Transfer
		return e.inventory.Transfer(ctx, inventory.TransferInput{
			MaterialID:     p.MaterialID,
			FromLocationID: p.FromLocationID,
			ToLocationID:   p.ToLocationID,
			MovedBy:        p.MovedBy,
			Reason:         p.Reason,
		})
	case entity.ActionKindIssue:
		p := action.Issue
		return e.inventory.Issue(ctx, inventory.IssueInput{
			MaterialID: p.MaterialID,
			JobNumber:  p.JobNumber,
			WorkOrder:  p.WorkOrder,
			Quantity:   p.Quantity,
			IssuedBy:   p.IssuedBy,
		})
	case entity.ActionKindShipment:
		p := action.Shipment
		return e.inventory.ShipOut(ctx, inventory.ShipmentInput{
			MaterialID:     p.MaterialID,
			Destination:    p.Destination,
			Carrier:        p.Carrier,
			TrackingNumber: p.TrackingNumber,
			Quantity:       p.Quantity,
			ShippedBy:      p.ShippedBy,
		})
	default:
		return fmt.Errorf("tipo de acción desconocido: %q", action.Kind)
	}
}
