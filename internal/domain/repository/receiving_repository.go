package repository

import "github.com/jhoicas/Inventario-patio/internal/domain/entity"

// ReceivingRepository define el puerto para recepciones, sus fotos y la
// resolución de excepciones.
type ReceivingRepository interface {
	Create(record *entity.ReceivingRecord) error
	GetByID(id string) (*entity.ReceivingRecord, error)
	AddPhoto(photo *entity.InspectionPhoto) error
	// ListExceptions devuelve las recepciones con excepción, solo las
	// abiertas salvo que includeResolved sea true.
	ListExceptions(includeResolved bool) ([]*entity.ExceptionView, error)
	// ResolveException marca la excepción del registro como resuelta con la
	// disposición dada. Devuelve false si el registro no existe o no tiene
	// excepción.
	ResolveException(id, resolution string) (bool, error)
}
