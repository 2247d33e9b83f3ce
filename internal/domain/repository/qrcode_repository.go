package repository

import "github.com/jhoicas/Inventario-patio/internal/domain/entity"

// QRCodeRepository define el puerto para códigos QR. Create debe devolver
// domain.ErrDuplicate ante una violación del constraint único sobre
// code_value: el caller re-consulta en vez de fallar (first-writer-wins).
type QRCodeRepository interface {
	GetByID(id string) (*entity.QRCode, error)
	GetByValue(codeValue string) (*entity.QRCode, error)
	Create(code *entity.QRCode) error
	// LinkEntity vincula el código a la entidad recibida (entity_id).
	LinkEntity(id, entityID string) error
	List() ([]*entity.QRCode, error)
}
