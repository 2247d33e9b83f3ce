package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-patio/internal/domain/entity"
)

// MaterialFilter filtros opcionales para listar materiales.
type MaterialFilter struct {
	Status       string
	MaterialType string
	Search       string // busca en tipo, valor de QR y grado
}

// MaterialRepository define el puerto al almacén remoto para materiales.
// El remoto es el único dueño del estado; la cantidad se modifica
// exclusivamente vía UpdateQuantity con la cantidad esperada como guardia.
type MaterialRepository interface {
	GetByID(id string) (*entity.Material, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE); usar
	// dentro de una transacción.
	GetForUpdate(id string) (*entity.Material, error)
	Create(m *entity.Material) error
	UpdateLocation(id, locationID string) error
	// UpdateQuantity actualiza cantidad y estado solo si la cantidad
	// observada sigue siendo expected; si otra escritura ganó la carrera
	// devuelve domain.ErrConflict.
	UpdateQuantity(id string, quantity decimal.Decimal, status string, expected decimal.Decimal) error
	List(f MaterialFilter) ([]*entity.MaterialView, error)
	GetViewByID(id string) (*entity.MaterialView, error)
	// GetViewByReceivingRecord resuelve el material creado por una recepción.
	GetViewByReceivingRecord(recordID string) (*entity.MaterialView, error)
}
