package repository

import "github.com/jhoicas/Inventario-patio/internal/domain/entity"

// MovementRepository puerto de persistencia para traslados (append-only).
type MovementRepository interface {
	Create(movement *entity.MaterialMovement) error
	ListByMaterial(materialID string) ([]*entity.MaterialMovement, error)
}

// IssueRepository puerto de persistencia para entregas a obra (append-only).
type IssueRepository interface {
	Create(issue *entity.MaterialIssue) error
	ListByMaterial(materialID string) ([]*entity.MaterialIssue, error)
}

// ShipmentRepository puerto de persistencia para despachos (append-only).
type ShipmentRepository interface {
	Create(shipment *entity.ShipmentOut) error
	ListByMaterial(materialID string) ([]*entity.ShipmentOut, error)
}
