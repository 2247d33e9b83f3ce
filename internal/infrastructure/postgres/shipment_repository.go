package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-patio/internal/domain/entity"
	"github.com/jhoicas/Inventario-patio/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo implementación de ShipmentRepository sobre PostgreSQL
// (usable con pool o tx). Las filas son append-only.
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

// Create persiste un despacho saliente.
func (r *ShipmentRepo) Create(shipment *entity.ShipmentOut) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO shipments_out (id, material_id, destination, carrier, tracking_number, quantity_shipped, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())`,
		shipment.ID, shipment.MaterialID, shipment.Destination,
		nullable(shipment.Carrier), nullable(shipment.TrackingNumber), shipment.QuantityShipped,
	)
	if err != nil {
		return wrapErr("create shipment", err)
	}
	return nil
}

// ListByMaterial lista los despachos de un material, más recientes primero.
func (r *ShipmentRepo) ListByMaterial(materialID string) ([]*entity.ShipmentOut, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, material_id, destination, carrier, tracking_number, quantity_shipped, created_at
		FROM shipments_out WHERE material_id = $1 ORDER BY created_at DESC`, materialID)
	if err != nil {
		return nil, wrapErr("list shipments", err)
	}
	defer rows.Close()
	var list []*entity.ShipmentOut
	for rows.Next() {
		var s entity.ShipmentOut
		var carrier, tracking *string
		if err := rows.Scan(&s.ID, &s.MaterialID, &s.Destination, &carrier,
			&tracking, &s.QuantityShipped, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		if carrier != nil {
			s.Carrier = *carrier
		}
		if tracking != nil {
			s.TrackingNumber = *tracking
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
