package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-patio/internal/domain/entity"
	"github.com/jhoicas/Inventario-patio/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo implementación de DashboardRepository sobre PostgreSQL.
// Solo lecturas agregadas; no participa en transacciones.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// KPISummary calcula los indicadores del tablero en dos consultas: los
// agregados de materiales y el conteo de excepciones abiertas.
func (r *DashboardRepo) KPISummary() (*entity.KPISummary, error) {
	var s entity.KPISummary
	err := r.q.QueryRow(context.Background(), `
		SELECT count(*),
			count(*) FILTER (WHERE status = 'in_yard'),
			coalesce(sum(current_quantity) FILTER (WHERE status = 'in_yard'), 0),
			count(*) FILTER (WHERE status = 'in_yard'
				AND created_at < now() - interval '30 days'
				AND created_at >= now() - interval '90 days'),
			count(*) FILTER (WHERE status = 'in_yard'
				AND created_at < now() - interval '90 days')
		FROM materials`).
		Scan(&s.TotalMaterials, &s.TotalInYard, &s.TotalQuantityInYard, &s.AgingOver30, &s.AgingOver90)
	if err != nil {
		return nil, wrapErr("kpi summary", err)
	}

	err = r.q.QueryRow(context.Background(), `
		SELECT count(*) FROM receiving_records
		WHERE has_exception AND NOT exception_resolved`).
		Scan(&s.OpenExceptions)
	if err != nil {
		return nil, wrapErr("count open exceptions", err)
	}
	return &s, nil
}

// InventoryByType agrupa el inventario in_yard por tipo de material, los
// tipos con más lotes primero.
func (r *DashboardRepo) InventoryByType() ([]*entity.InventoryByType, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT material_type, count(*), coalesce(sum(current_quantity), 0)
		FROM materials WHERE status = 'in_yard'
		GROUP BY material_type ORDER BY count(*) DESC`)
	if err != nil {
		return nil, wrapErr("inventory by type", err)
	}
	defer rows.Close()
	var list []*entity.InventoryByType
	for rows.Next() {
		var row entity.InventoryByType
		if err := rows.Scan(&row.MaterialType, &row.ItemCount, &row.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan inventory by type: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// YardOverview devuelve la utilización de cada ubicación del patio,
// incluidas las vacías, ordenadas por zona/fila/rack.
func (r *DashboardRepo) YardOverview() ([]*entity.YardLocationOverview, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT l.id, l.zone, l.row, l.rack, l.is_hold_area, l.capacity,
			count(m.id), coalesce(sum(m.current_quantity), 0)
		FROM locations l
		LEFT JOIN materials m ON m.location_id = l.id AND m.status = 'in_yard'
		GROUP BY l.id, l.zone, l.row, l.rack, l.is_hold_area, l.capacity
		ORDER BY l.zone, l.row, l.rack`)
	if err != nil {
		return nil, wrapErr("yard overview", err)
	}
	defer rows.Close()
	var list []*entity.YardLocationOverview
	for rows.Next() {
		var loc entity.YardLocationOverview
		err := rows.Scan(&loc.LocationID, &loc.Zone, &loc.Row, &loc.Rack,
			&loc.IsHoldArea, &loc.Capacity, &loc.ItemsStored, &loc.TotalQuantity)
		if err != nil {
			return nil, fmt.Errorf("scan yard overview: %w", err)
		}
		list = append(list, &loc)
	}
	return list, rows.Err()
}
