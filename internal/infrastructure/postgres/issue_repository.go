package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-patio/internal/domain/entity"
	"github.com/jhoicas/Inventario-patio/internal/domain/repository"
)

var _ repository.IssueRepository = (*IssueRepo)(nil)

// IssueRepo implementación de IssueRepository sobre PostgreSQL
// (usable con pool o tx). Las filas son append-only.
type IssueRepo struct {
	q Querier
}

// NewIssueRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIssueRepository(q Querier) *IssueRepo {
	return &IssueRepo{q: q}
}

// Create persiste una entrega a obra.
func (r *IssueRepo) Create(issue *entity.MaterialIssue) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO material_issues (id, material_id, job_number, work_order, quantity_issued, issued_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())`,
		issue.ID, issue.MaterialID, issue.JobNumber, nullable(issue.WorkOrder),
		issue.QuantityIssued, issue.IssuedBy,
	)
	if err != nil {
		return wrapErr("create material issue", err)
	}
	return nil
}

// ListByMaterial lista las entregas de un material, más recientes primero.
func (r *IssueRepo) ListByMaterial(materialID string) ([]*entity.MaterialIssue, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, material_id, job_number, work_order, quantity_issued, issued_by, created_at
		FROM material_issues WHERE material_id = $1 ORDER BY created_at DESC`, materialID)
	if err != nil {
		return nil, wrapErr("list issues", err)
	}
	defer rows.Close()
	var list []*entity.MaterialIssue
	for rows.Next() {
		var it entity.MaterialIssue
		var workOrder *string
		if err := rows.Scan(&it.ID, &it.MaterialID, &it.JobNumber, &workOrder,
			&it.QuantityIssued, &it.IssuedBy, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		if workOrder != nil {
			it.WorkOrder = *workOrder
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
