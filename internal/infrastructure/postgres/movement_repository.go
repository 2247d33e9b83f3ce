package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-patio/internal/domain/entity"
	"github.com/jhoicas/Inventario-patio/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL
// (usable con pool o tx). Las filas son append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un traslado.
func (r *MovementRepo) Create(movement *entity.MaterialMovement) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO material_movements (id, material_id, from_location_id, to_location_id, moved_by, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())`,
		movement.ID, movement.MaterialID, movement.FromLocationID,
		movement.ToLocationID, movement.MovedBy, nullable(movement.Reason),
	)
	if err != nil {
		return wrapErr("create material movement", err)
	}
	return nil
}

// ListByMaterial lista los traslados de un material, más recientes primero.
func (r *MovementRepo) ListByMaterial(materialID string) ([]*entity.MaterialMovement, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, material_id, from_location_id, to_location_id, moved_by, reason, created_at
		FROM material_movements WHERE material_id = $1 ORDER BY created_at DESC`, materialID)
	if err != nil {
		return nil, wrapErr("list movements", err)
	}
	defer rows.Close()
	var list []*entity.MaterialMovement
	for rows.Next() {
		var m entity.MaterialMovement
		var reason *string
		if err := rows.Scan(&m.ID, &m.MaterialID, &m.FromLocationID, &m.ToLocationID,
			&m.MovedBy, &reason, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if reason != nil {
			m.Reason = *reason
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
