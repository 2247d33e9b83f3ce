package receiving

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-patio/internal/domain"
	"github.com/jhoicas/Inventario-patio/internal/domain/entity"
	"github.com/jhoicas/Inventario-patio/internal/domain/repository"
	"github.com/jhoicas/Inventario-patio/pkg/logger"
)

// UseCase implementa la recepción de material: resuelve o crea el código
// QR escaneado, persiste el registro de recepción, sube las fotos de
// inspección, vincula el QR y, solo si la decisión es accepted o
// partially_accepted, crea el Material con CurrentQuantity = Qty.
type UseCase struct {
	txRunner  TxRunner
	qrCodes   repository.QRCodeRepository
	records   repository.ReceivingRepository
	auditRepo repository.AuditRepository
	photos    PhotoUploader
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	qrCodes repository.QRCodeRepository,
	records repository.ReceivingRepository,
	auditRepo repository.AuditRepository,
	photos PhotoUploader,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		qrCodes:   qrCodes,
		records:   records,
		auditRepo: auditRepo,
		photos:    photos,
		log:       log,
	}
}

// PhotoInput una foto adjunta a la recepción (solo en la variante online;
// la variante encolada difiere la recepción sin fotos).
type PhotoInput struct {
	Data      []byte
	PhotoType string
}

// SubmitInput entrada completa de una recepción.
type SubmitInput struct {
	entity.ReceivingPayload
	Photos []PhotoInput
}

// Submit ejecuta la secuencia completa de recepción y devuelve el id del
// registro creado. Registro, vínculo del QR y material se escriben en una
// sola transacción; las fotos se suben después, best-effort.
func (uc *UseCase) Submit(ctx context.Context, in SubmitInput) (string, error) {
	if in.QRCodeValue == "" || in.MaterialType == "" || in.CreatedBy == "" {
		return "", domain.ErrInvalidInput
	}
	switch in.Status {
	case entity.ReceivingStatusAccepted, entity.ReceivingStatusPartiallyAccepted,
		entity.ReceivingStatusRejected, entity.ReceivingStatusPending:
	default:
		return "", domain.ErrInvalidInput
	}

	qr, err := uc.resolveOrCreateCode(in.QRCodeValue)
	if err != nil {
		return "", err
	}

	record := &entity.ReceivingRecord{
		ID:             uuid.New().String(),
		QRCodeID:       qr.ID,
		Status:         in.Status,
		MaterialType:   in.MaterialType,
		Size:           in.Size,
		Grade:          in.Grade,
		Qty:            in.Qty,
		Weight:         in.Weight,
		Description:    in.Description,
		Spec:           in.Spec,
		Vendor:         in.Vendor,
		PONumber:       in.PONumber,
		DeliveryTicket: in.DeliveryTicket,
		Carrier:        in.Carrier,
		Condition:      in.Condition,
		DamageNotes:    in.DamageNotes,
		InspectionPass: in.InspectionPass,
		HasException:   in.HasException,
		ExceptionType:  in.ExceptionType,
		LocationID:     in.LocationID,
		CreatedBy:      in.CreatedBy,
	}

	err = uc.txRunner.RunReceiving(ctx, func(
		qrRepo repository.QRCodeRepository,
		receivingRepo repository.ReceivingRepository,
		materialRepo repository.MaterialRepository,
	) error {
		if err := receivingRepo.Create(record); err != nil {
			return err
		}
		if err := qrRepo.LinkEntity(qr.ID, record.ID); err != nil {
			return err
		}
		if in.Status == entity.ReceivingStatusAccepted || in.Status == entity.ReceivingStatusPartiallyAccepted {
			return materialRepo.Create(&entity.Material{
				ID:                uuid.New().String(),
				ReceivingRecordID: record.ID,
				QRCodeID:          qr.ID,
				MaterialType:      in.MaterialType,
				Size:              in.Size,
				Grade:             in.Grade,
				Qty:               in.Qty,
				CurrentQuantity:   in.Qty,
				Weight:            in.Weight,
				Spec:              in.Spec,
				LocationID:        in.LocationID,
				Status:            entity.MaterialStatusInYard,
			})
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	uc.uploadPhotos(ctx, record.ID, in.Photos)

	uc.audit(in.CreatedBy, "receiving_created", "receiving_record", record.ID, map[string]any{
		"material_type": in.MaterialType,
		"qty":           in.Qty,
		"status":        in.Status,
		"has_exception": in.HasException,
	})
	return record.ID, nil
}

// RecordByID devuelve el detalle de una recepción.
func (uc *UseCase) RecordByID(ctx context.Context, id string) (*entity.ReceivingRecord, error) {
	record, err := uc.records.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

// Exceptions lista las recepciones marcadas con excepción, solo las
// abiertas salvo que includeResolved sea true.
func (uc *UseCase) Exceptions(ctx context.Context, includeResolved bool) ([]*entity.ExceptionView, error) {
	return uc.records.ListExceptions(includeResolved)
}

// ResolveException cierra la excepción de una recepción con la disposición
// tomada en oficina: retener el material (hold) o devolverlo al proveedor
// (return_to_vendor).
func (uc *UseCase) ResolveException(ctx context.Context, recordID, resolution, resolvedBy string) error {
	if recordID == "" || resolvedBy == "" {
		return domain.ErrInvalidInput
	}
	switch resolution {
	case entity.ResolutionHold, entity.ResolutionReturnToVendor:
	default:
		return domain.ErrInvalidInput
	}

	resolved, err := uc.records.ResolveException(recordID, resolution)
	if err != nil {
		return err
	}
	if !resolved {
		return domain.ErrNotFound
	}

	uc.audit(resolvedBy, "exception_resolved", "receiving_record", recordID, map[string]any{
		"resolution": resolution,
	})
	return nil
}

// resolveOrCreateCode busca el código escaneado o lo crea. Un conflicto de
// constraint único al insertar significa que otro dispositivo lo creó
// primero: se re-consulta en vez de fallar (first-writer-wins).
func (uc *UseCase) resolveOrCreateCode(codeValue string) (*entity.QRCode, error) {
	qr, err := uc.qrCodes.GetByValue(codeValue)
	if err != nil {
		return nil, err
	}
	if qr != nil {
		return qr, nil
	}
	created := &entity.QRCode{
		ID:         uuid.New().String(),
		CodeValue:  codeValue,
		EntityType: entity.EntityTypeItem,
	}
	if err := uc.qrCodes.Create(created); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			existing, err := uc.qrCodes.GetByValue(codeValue)
			if err != nil {
				return nil, err
			}
			if existing == nil {
				return nil, domain.ErrConflict
			}
			return existing, nil
		}
		return nil, err
	}
	return created, nil
}

// uploadPhotos sube cada foto y guarda su referencia. Los fallos
// individuales se registran y no afectan al registro principal.
func (uc *UseCase) uploadPhotos(ctx context.Context, recordID string, photos []PhotoInput) {
	for i, photo := range photos {
		key := fmt.Sprintf("%s/%d_%s.jpg", recordID, time.Now().UnixMilli()+int64(i), photo.PhotoType)
		path, err := uc.photos.Upload(ctx, photo.Data, key)
		if err != nil {
			uc.log.Warn().Err(err).Str("record_id", recordID).Msg("subida de foto fallida")
			continue
		}
		err = uc.records.AddPhoto(&entity.InspectionPhoto{
			ID:                uuid.New().String(),
			ReceivingRecordID: recordID,
			StoragePath:       path,
			PhotoType:         photo.PhotoType,
		})
		if err != nil {
			uc.log.Warn().Err(err).Str("record_id", recordID).Msg("referencia de foto no guardada")
		}
	}
}

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
