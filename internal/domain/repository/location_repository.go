package repository

import "github.com/jhoicas/Inventario-patio/internal/domain/entity"

// LocationRepository define el puerto de lectura de ubicaciones del patio.
type LocationRepository interface {
	GetByID(id string) (*entity.Location, error)
	List() ([]*entity.Location, error)
}
