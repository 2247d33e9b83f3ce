package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-patio/internal/domain"
	"github.com/jhoicas/Inventario-patio/internal/domain/entity"
	"github.com/jhoicas/Inventario-patio/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL
// (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `
	id, receiving_record_id, qr_code_id, material_type, size, grade,
	qty, current_quantity, weight, spec, location_id, status, created_at`

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	var size, grade, spec *string
	err := row.Scan(
		&m.ID, &m.ReceivingRecordID, &m.QRCodeID, &m.MaterialType, &size, &grade,
		&m.Qty, &m.CurrentQuantity, &m.Weight, &spec, &m.LocationID, &m.Status, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if size != nil {
		m.Size = *size
	}
	if grade != nil {
		m.Grade = *grade
	}
	if spec != nil {
		m.Spec = *spec
	}
	return &m, nil
}

// GetByID obtiene un material por id; nil si no existe.
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	m, err := scanMaterial(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get material", err)
	}
	return m, nil
}

// GetForUpdate obtiene el material y bloquea la fila (SELECT FOR UPDATE).
// Usar dentro de una transacción.
func (r *MaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1 FOR UPDATE`
	m, err := scanMaterial(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get material for update", err)
	}
	return m, nil
}

// Create persiste un material nuevo.
func (r *MaterialRepo) Create(m *entity.Material) error {
	query := `
		INSERT INTO materials (id, receiving_record_id, qr_code_id, material_type, size, grade,
			qty, current_quantity, weight, spec, location_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now())`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ReceivingRecordID, m.QRCodeID, m.MaterialType, nullable(m.Size), nullable(m.Grade),
		m.Qty, m.CurrentQuantity, m.Weight, nullable(m.Spec), m.LocationID, m.Status,
	)
	if err != nil {
		return wrapErr("create material", err)
	}
	return nil
}

// UpdateLocation cambia la referencia de ubicación del material.
func (r *MaterialRepo) UpdateLocation(id, locationID string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE materials SET location_id = $2 WHERE id = $1`, id, locationID)
	if err != nil {
		return wrapErr("update material location", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity actualiza cantidad y estado de forma condicional: la
// cláusula WHERE exige que la cantidad observada siga vigente. Si otra
// escritura ganó la carrera no se afecta ninguna fila y se devuelve
// domain.ErrConflict para que el caller re-lea y revalide.
func (r *MaterialRepo) UpdateQuantity(id string, quantity decimal.Decimal, status string, expected decimal.Decimal) error {
	tag, err := r.q.Exec(context.Background(), `
		UPDATE materials SET current_quantity = $2, status = $3
		WHERE id = $1 AND current_quantity = $4`,
		id, quantity, status, expected)
	if err != nil {
		return wrapErr("update material quantity", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

const materialViewQuery = `
	SELECT m.id, m.receiving_record_id, m.qr_code_id, m.material_type, m.size, m.grade,
		m.qty, m.current_quantity, m.weight, m.spec, m.location_id, m.status, m.created_at,
		q.code_value, l.zone, l.row, l.rack
	FROM materials m
	LEFT JOIN qr_codes q ON q.id = m.qr_code_id
	LEFT JOIN locations l ON l.id = m.location_id`

func scanMaterialView(row pgx.Row) (*entity.MaterialView, error) {
	var v entity.MaterialView
	var size, grade, spec, codeValue, zone, lrow, rack *string
	err := row.Scan(
		&v.ID, &v.ReceivingRecordID, &v.QRCodeID, &v.MaterialType, &size, &grade,
		&v.Qty, &v.CurrentQuantity, &v.Weight, &spec, &v.LocationID, &v.Status, &v.CreatedAt,
		&codeValue, &zone, &lrow, &rack,
	)
	if err != nil {
		return nil, err
	}
	if size != nil {
		v.Size = *size
	}
	if grade != nil {
		v.Grade = *grade
	}
	if spec != nil {
		v.Spec = *spec
	}
	if codeValue != nil {
		v.QRCodeValue = *codeValue
	}
	if zone != nil {
		v.LocationZone = *zone
	}
	if lrow != nil {
		v.LocationRow = *lrow
	}
	if rack != nil {
		v.LocationRack = *rack
	}
	return &v, nil
}

// List lista materiales con QR y ubicación resueltos, más recientes primero.
func (r *MaterialRepo) List(f repository.MaterialFilter) ([]*entity.MaterialView, error) {
	query := materialViewQuery
	var args []any
	var conds []string
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("m.status = $%d", len(args)))
	}
	if f.MaterialType != "" {
		args = append(args, f.MaterialType)
		conds = append(conds, fmt.Sprintf("m.material_type = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(m.material_type ILIKE $%d OR q.code_value ILIKE $%d OR m.grade ILIKE $%d)", n, n, n))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY m.created_at DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, wrapErr("list materials", err)
	}
	defer rows.Close()
	var list []*entity.MaterialView
	for rows.Next() {
		v, err := scanMaterialView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// GetViewByID devuelve el detalle de un material; nil si no existe.
func (r *MaterialRepo) GetViewByID(id string) (*entity.MaterialView, error) {
	v, err := scanMaterialView(r.q.QueryRow(context.Background(), materialViewQuery+` WHERE m.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get material view", err)
	}
	return v, nil
}

// GetViewByReceivingRecord resuelve el material creado por una recepción.
func (r *MaterialRepo) GetViewByReceivingRecord(recordID string) (*entity.MaterialView, error) {
	v, err := scanMaterialView(r.q.QueryRow(context.Background(),
		materialViewQuery+` WHERE m.receiving_record_id = $1`, recordID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get material by receiving record", err)
	}
	return v, nil
}

// nullable convierte cadena vacía en NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
