package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-patio/internal/domain"
	"github.com/jhoicas/Inventario-patio/internal/domain/entity"
	"github.com/jhoicas/Inventario-patio/internal/domain/repository"
)

var _ repository.QRCodeRepository = (*QRCodeRepo)(nil)

// QRCodeRepo implementación de QRCodeRepository sobre PostgreSQL
// (usable con pool o tx).
type QRCodeRepo struct {
	q Querier
}

// NewQRCodeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQRCodeRepository(q Querier) *QRCodeRepo {
	return &QRCodeRepo{q: q}
}

func scanQRCode(row pgx.Row) (*entity.QRCode, error) {
	var c entity.QRCode
	if err := row.Scan(&c.ID, &c.CodeValue, &c.EntityType, &c.EntityID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID obtiene un código por id; nil si no existe.
func (r *QRCodeRepo) GetByID(id string) (*entity.QRCode, error) {
	c, err := scanQRCode(r.q.QueryRow(context.Background(),
		`SELECT id, code_value, entity_type, entity_id, created_at FROM qr_codes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get qr code", err)
	}
	return c, nil
}

// GetByValue obtiene un código por su valor escaneado; nil si no existe.
func (r *QRCodeRepo) GetByValue(codeValue string) (*entity.QRCode, error) {
	c, err := scanQRCode(r.q.QueryRow(context.Background(),
		`SELECT id, code_value, entity_type, entity_id, created_at FROM qr_codes WHERE code_value = $1`, codeValue))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get qr code by value", err)
	}
	return c, nil
}

// Create persiste un código nuevo. Una violación del constraint único
// sobre code_value se devuelve como domain.ErrDuplicate: otro dispositivo
// lo creó primero y el caller debe re-consultar.
func (r *QRCodeRepo) Create(code *entity.QRCode) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO qr_codes (id, code_value, entity_type, created_at) VALUES ($1, $2, $3, now())`,
		code.ID, code.CodeValue, code.EntityType)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: qr code %q", domain.ErrDuplicate, code.CodeValue)
		}
		return wrapErr("create qr code", err)
	}
	return nil
}

// LinkEntity vincula el código a la entidad recibida.
func (r *QRCodeRepo) LinkEntity(id, entityID string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE qr_codes SET entity_id = $2 WHERE id = $1`, id, entityID)
	if err != nil {
		return wrapErr("link qr code", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todos los códigos, más recientes primero.
func (r *QRCodeRepo) List() ([]*entity.QRCode, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, code_value, entity_type, entity_id, created_at FROM qr_codes ORDER BY created_at DESC`)
	if err != nil {
		return nil, wrapErr("list qr codes", err)
	}
	defer rows.Close()
	var list []*entity.QRCode
	for rows.Next() {
		c, err := scanQRCode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan qr code: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
