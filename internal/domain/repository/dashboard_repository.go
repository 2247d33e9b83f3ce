package repository

import "github.com/jhoicas/Inventario-patio/internal/domain/entity"

// DashboardRepository define el puerto de lectura de los agregados del
// tablero de oficina.
type DashboardRepository interface {
	KPISummary() (*entity.KPISummary, error)
	InventoryByType() ([]*entity.InventoryByType, error)
	YardOverview() ([]*entity.YardLocationOverview, error)
}
