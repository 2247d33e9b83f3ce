package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-patio/internal/domain/entity"
	"github.com/jhoicas/Inventario-patio/internal/domain/repository"
)

var _ repository.ReceivingRepository = (*ReceivingRepo)(nil)

// ReceivingRepo implementación de ReceivingRepository sobre PostgreSQL
// (usable con pool o tx).
type ReceivingRepo struct {
	q Querier
}

// NewReceivingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceivingRepository(q Querier) *ReceivingRepo {
	return &ReceivingRepo{q: q}
}

// Create persiste un registro de recepción.
func (r *ReceivingRepo) Create(record *entity.ReceivingRecord) error {
	query := `
		INSERT INTO receiving_records (id, qr_code_id, status, material_type, size, grade,
			qty, weight, description, spec, vendor, po_number, delivery_ticket, carrier,
			condition, damage_notes, inspection_pass, has_exception, exception_type,
			exception_resolved, exception_resolution, location_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, now())`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.QRCodeID, record.Status, record.MaterialType,
		nullable(record.Size), nullable(record.Grade), record.Qty, record.Weight,
		nullable(record.Description), nullable(record.Spec), nullable(record.Vendor),
		nullable(record.PONumber), nullable(record.DeliveryTicket), nullable(record.Carrier),
		record.Condition, nullable(record.DamageNotes), record.InspectionPass,
		record.HasException, record.ExceptionType, record.ExceptionResolved,
		record.ExceptionResolution, record.LocationID, record.CreatedBy,
	)
	if err != nil {
		return wrapErr("create receiving record", err)
	}
	return nil
}

// GetByID obtiene un registro por id; nil si no existe.
func (r *ReceivingRepo) GetByID(id string) (*entity.ReceivingRecord, error) {
	query := `
		SELECT id, qr_code_id, status, material_type, size, grade, qty, weight,
			description, spec, vendor, po_number, delivery_ticket, carrier,
			condition, damage_notes, inspection_pass, has_exception, exception_type,
			exception_resolved, exception_resolution, location_id, created_by, created_at
		FROM receiving_records WHERE id = $1`
	var rec entity.ReceivingRecord
	var size, grade, description, spec, vendor, poNumber, deliveryTicket, carrier, damageNotes *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rec.ID, &rec.QRCodeID, &rec.Status, &rec.MaterialType, &size, &grade,
		&rec.Qty, &rec.Weight, &description, &spec, &vendor, &poNumber,
		&deliveryTicket, &carrier, &rec.Condition, &damageNotes, &rec.InspectionPass,
		&rec.HasException, &rec.ExceptionType, &rec.ExceptionResolved,
		&rec.ExceptionResolution, &rec.LocationID, &rec.CreatedBy, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get receiving record", err)
	}
	for dst, src := range map[*string]*string{
		&rec.Size: size, &rec.Grade: grade, &rec.Description: description,
		&rec.Spec: spec, &rec.Vendor: vendor, &rec.PONumber: poNumber,
		&rec.DeliveryTicket: deliveryTicket, &rec.Carrier: carrier, &rec.DamageNotes: damageNotes,
	} {
		if src != nil {
			*dst = *src
		}
	}
	return &rec, nil
}

// ListExceptions lista las recepciones con excepción, más recientes
// primero, con la ubicación resuelta para la bandeja de oficina.
func (r *ReceivingRepo) ListExceptions(includeResolved bool) ([]*entity.ExceptionView, error) {
	query := `
		SELECT rr.id, rr.qr_code_id, rr.status, rr.material_type, rr.qty, rr.vendor,
			rr.po_number, rr.condition, rr.damage_notes, rr.exception_type,
			rr.exception_resolved, rr.exception_resolution, rr.location_id,
			rr.created_by, rr.created_at, l.zone, l.row, l.rack
		FROM receiving_records rr
		LEFT JOIN locations l ON l.id = rr.location_id
		WHERE rr.has_exception`
	if !includeResolved {
		query += ` AND NOT rr.exception_resolved`
	}
	query += ` ORDER BY rr.created_at DESC`

	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, wrapErr("list exceptions", err)
	}
	defer rows.Close()

	var list []*entity.ExceptionView
	for rows.Next() {
		var view entity.ExceptionView
		var vendor, poNumber, damageNotes *string
		var zone, locationRow, rack *string
		err := rows.Scan(
			&view.ID, &view.QRCodeID, &view.Status, &view.MaterialType, &view.Qty,
			&vendor, &poNumber, &view.Condition, &damageNotes, &view.ExceptionType,
			&view.ExceptionResolved, &view.ExceptionResolution, &view.LocationID,
			&view.CreatedBy, &view.CreatedAt, &zone, &locationRow, &rack,
		)
		if err != nil {
			return nil, fmt.Errorf("scan exception: %w", err)
		}
		view.HasException = true
		for dst, src := range map[*string]*string{
			&view.Vendor: vendor, &view.PONumber: poNumber, &view.DamageNotes: damageNotes,
			&view.LocationZone: zone, &view.LocationRow: locationRow, &view.LocationRack: rack,
		} {
			if src != nil {
				*dst = *src
			}
		}
		list = append(list, &view)
	}
	return list, rows.Err()
}

// ResolveException marca la excepción como resuelta. Cero filas afectadas
// significa que el registro no existe o no tiene excepción.
func (r *ReceivingRepo) ResolveException(id, resolution string) (bool, error) {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE receiving_records
		 SET exception_resolved = true, exception_resolution = $2
		 WHERE id = $1 AND has_exception`,
		id, resolution)
	if err != nil {
		return false, wrapErr("resolve exception", err)
	}
	return tag.RowsAffected() > 0, nil
}

// AddPhoto guarda la referencia de una foto de inspección subida.
func (r *ReceivingRepo) AddPhoto(photo *entity.InspectionPhoto) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO inspection_photos (id, receiving_record_id, storage_path, photo_type, created_at)
		 VALUES ($1, $2, $3, $4, now())`,
		photo.ID, photo.ReceivingRecordID, photo.StoragePath, photo.PhotoType)
	if err != nil {
		return wrapErr("add inspection photo", err)
	}
	return nil
}
