package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-patio/internal/domain"
	"github.com/jhoicas/Inventario-patio/internal/domain/entity"
	"github.com/jhoicas/Inventario-patio/internal/domain/repository"
	"github.com/jhoicas/Inventario-patio/pkg/logger"
)

// UseCase implementa las operaciones de inventario que conservan cantidad:
// traslado, entrega a obra y despacho saliente. Cada operación es una
// unidad lógica contra el almacén remoto (nunca contra la caché local) y
// deja un registro de auditoría append-only.
type UseCase struct {
	txRunner  TxRunner
	materials repository.MaterialRepository
	locations repository.LocationRepository
	movements repository.MovementRepository
	issues    repository.IssueRepository
	shipments repository.ShipmentRepository
	auditRepo repository.AuditRepository
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	materials repository.MaterialRepository,
	locations repository.LocationRepository,
	movements repository.MovementRepository,
	issues repository.IssueRepository,
	shipments repository.ShipmentRepository,
	auditRepo repository.AuditRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		materials: materials,
		locations: locations,
		movements: movements,
		issues:    issues,
		shipments: shipments,
		auditRepo: auditRepo,
		log:       log,
	}
}

// TransferInput entrada para trasladar un material de ubicación.
type TransferInput struct {
	MaterialID     string
	FromLocationID *string
	ToLocationID   string
	MovedBy        string
	Reason         string
}

// IssueInput entrada para entregar material a una obra.
type IssueInput struct {
	MaterialID string
	JobNumber  string
	WorkOrder  string
	Quantity   decimal.Decimal
	IssuedBy   string
}

// ShipmentInput entrada para un despacho saliente.
type ShipmentInput struct {
	MaterialID     string
	Destination    string
	Carrier        string
	TrackingNumber string
	Quantity       decimal.Decimal
	ShippedBy      string
}

// Transfer mueve el material a otra ubicación y registra el traslado.
// La cantidad no cambia. Si la ubicación destino no existe se rechaza con
// domain.ErrNotFound (error visible al caller, nunca ignorado en silencio).
func (uc *UseCase) Transfer(ctx context.Context, in TransferInput) error {
	if in.MaterialID == "" || in.ToLocationID == "" || in.MovedBy == "" {
		return domain.ErrInvalidInput
	}
	loc, err := uc.locations.GetByID(in.ToLocationID)
	if err != nil {
		return err
	}
	if loc == nil {
		return domain.ErrNotFound
	}

	err = uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		movementRepo repository.MovementRepository,
		_ repository.IssueRepository,
		_ repository.ShipmentRepository,
	) error {
		if err := materialRepo.UpdateLocation(in.MaterialID, in.ToLocationID); err != nil {
			return err
		}
		return movementRepo.Create(&entity.MaterialMovement{
			ID:             uuid.New().String(),
			MaterialID:     in.MaterialID,
			FromLocationID: in.FromLocationID,
			ToLocationID:   in.ToLocationID,
			MovedBy:        in.MovedBy,
			Reason:         in.Reason,
		})
	})
	if err != nil {
		return err
	}

	uc.audit(in.MovedBy, "material_transferred", "material", in.MaterialID, map[string]any{
		"from":   in.FromLocationID,
		"to":     in.ToLocationID,
		"reason": in.Reason,
	})
	return nil
}

// Issue lee la cantidad actual del material, descuenta la solicitada y
// registra la entrega. Si el descuento dejaría la cantidad negativa falla
// con domain.ErrInsufficientQuantity sin escribir nada. La fila se bloquea
// (SELECT FOR UPDATE) y la actualización lleva la cantidad observada como
// guardia, así una entrega concurrente desde otro dispositivo revalida
// contra la cantidad más fresca en vez de pisar a ciegas.
func (uc *UseCase) Issue(ctx context.Context, in IssueInput) error {
	if in.MaterialID == "" || in.JobNumber == "" || in.IssuedBy == "" {
		return domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}

	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		_ repository.MovementRepository,
		issueRepo repository.IssueRepository,
		_ repository.ShipmentRepository,
	) error {
		m, err := materialRepo.GetForUpdate(in.MaterialID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		newQty := m.CurrentQuantity.Sub(in.Quantity)
		if newQty.IsNegative() {
			return domain.ErrInsufficientQuantity
		}
		status := entity.MaterialStatusInYard
		if newQty.IsZero() {
			status = entity.MaterialStatusDepleted
		}
		if err := materialRepo.UpdateQuantity(in.MaterialID, newQty, status, m.CurrentQuantity); err != nil {
			return err
		}
		return issueRepo.Create(&entity.MaterialIssue{
			ID:             uuid.New().String(),
			MaterialID:     in.MaterialID,
			JobNumber:      in.JobNumber,
			WorkOrder:      in.WorkOrder,
			QuantityIssued: in.Quantity,
			IssuedBy:       in.IssuedBy,
		})
	})
	if err != nil {
		return err
	}

	uc.audit(in.IssuedBy, "material_issued", "material", in.MaterialID, map[string]any{
		"job_number": in.JobNumber,
		"quantity":   in.Quantity,
	})
	return nil
}

// ShipOut descuenta la cantidad despachada y registra el despacho. La
// aritmética es idéntica a Issue pero el estado terminal al llegar a cero
// es shipped, no depleted: el estado codifica cómo se agotó el material.
func (uc *UseCase) ShipOut(ctx context.Context, in ShipmentInput) error {
	if in.MaterialID == "" || in.Destination == "" {
		return domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}

	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		_ repository.MovementRepository,
		_ repository.IssueRepository,
		shipmentRepo repository.ShipmentRepository,
	) error {
		m, err := materialRepo.GetForUpdate(in.MaterialID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		newQty := m.CurrentQuantity.Sub(in.Quantity)
		if newQty.IsNegative() {
			return domain.ErrInsufficientQuantity
		}
		status := entity.MaterialStatusInYard
		if newQty.IsZero() {
			status = entity.MaterialStatusShipped
		}
		if err := materialRepo.UpdateQuantity(in.MaterialID, newQty, status, m.CurrentQuantity); err != nil {
			return err
		}
		return shipmentRepo.Create(&entity.ShipmentOut{
			ID:              uuid.New().String(),
			MaterialID:      in.MaterialID,
			Destination:     in.Destination,
			Carrier:         in.Carrier,
			TrackingNumber:  in.TrackingNumber,
			QuantityShipped: in.Quantity,
		})
	})
	if err != nil {
		return err
	}

	uc.audit(in.ShippedBy, "shipment_created", "material", in.MaterialID, map[string]any{
		"destination": in.Destination,
		"quantity":    in.Quantity,
		"carrier":     in.Carrier,
	})
	return nil
}

// Materials lista materiales con QR y ubicación resueltos.
func (uc *UseCase) Materials(ctx context.Context, f repository.MaterialFilter) ([]*entity.MaterialView, error) {
	return uc.materials.List(f)
}

// MaterialByID devuelve el detalle de un material.
func (uc *UseCase) MaterialByID(ctx context.Context, id string) (*entity.MaterialView, error) {
	m, err := uc.materials.GetViewByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// ShipmentHistory lista los despachos de un material.
func (uc *UseCase) ShipmentHistory(ctx context.Context, materialID string) ([]*entity.ShipmentOut, error) {
	return uc.shipments.ListByMaterial(materialID)
}

// IssueHistory lista las entregas a obra de un material.
func (uc *UseCase) IssueHistory(ctx context.Context, materialID string) ([]*entity.MaterialIssue, error) {
	return uc.issues.ListByMaterial(materialID)
}

// MovementHistory lista los traslados de un material.
func (uc *UseCase) MovementHistory(ctx context.Context, materialID string) ([]*entity.MaterialMovement, error) {
	return uc.movements.ListByMaterial(materialID)
}

// Locations lista las ubicaciones del patio.
func (uc *UseCase) Locations(ctx context.Context) ([]*entity.Location, error) {
	return uc.locations.List()
}

// audit inserta una entrada de auditoría best-effort: un fallo se registra
// en el log pero nunca revierte la mutación principal.
func (uc *UseCase) audit(userID, action, entityType, entityID string, details map[string]any) {
	err := uc.auditRepo.Insert(&entity.AuditEntry{
		ID:         uuid.New().String(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("action", action).Msg("entrada de auditoría no registrada")
	}
}
