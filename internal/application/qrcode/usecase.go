package qrcode

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-patio/internal/domain"
	"github.com/jhoicas/Inventario-patio/internal/domain/entity"
	"github.com/jhoicas/Inventario-patio/internal/domain/repository"
)

// UseCase gestiona los códigos QR imprimibles del patio: generación por
// lote, listado y detalle con el material vinculado.
type UseCase struct {
	qrCodes   repository.QRCodeRepository
	materials repository.MaterialRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(qrCodes repository.QRCodeRepository, materials repository.MaterialRepository) *UseCase {
	return &UseCase{qrCodes: qrCodes, materials: materials}
}

// BatchCreate genera count códigos nuevos con valor QR-XXXXXXXX.
func (uc *UseCase) BatchCreate(ctx context.Context, count int) ([]*entity.QRCode, error) {
	if count < 1 || count > 500 {
		return nil, domain.ErrInvalidInput
	}
	codes := make([]*entity.QRCode, 0, count)
	for i := 0; i < count; i++ {
		code := &entity.QRCode{
			ID:         uuid.New().String(),
			CodeValue:  newCodeValue(),
			EntityType: entity.EntityTypeItem,
		}
		if err := uc.qrCodes.Create(code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// List devuelve todos los códigos.
func (uc *UseCase) List(ctx context.Context) ([]*entity.QRCode, error) {
	return uc.qrCodes.List()
}

// Detail devuelve el código y, si está vinculado a un material, su vista.
func (uc *UseCase) Detail(ctx context.Context, id string) (*entity.QRCode, *entity.MaterialView, error) {
	qr, err := uc.qrCodes.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if qr == nil {
		return nil, nil, domain.ErrNotFound
	}
	if qr.EntityID == nil {
		return qr, nil, nil
	}
	// El vínculo apunta al registro de recepción; el material se resuelve
	// por esa recepción.
	material, err := uc.materials.GetViewByReceivingRecord(*qr.EntityID)
	if err != nil {
		return qr, nil, nil
	}
	return qr, material, nil
}

// newCodeValue genera un valor corto único: QR- + 8 hex aleatorios.
func newCodeValue() string {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return fmt.Sprintf("QR-%s", strings.ToUpper(hex.EncodeToString(b[:])))
}
