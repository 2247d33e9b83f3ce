package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-patio/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén
// remoto, pasando repositorios atados a esa tx. Garantiza que la
// verificación de cantidad y la escritura sean una sola unidad lógica:
// ningún actor externo observa una cantidad negativa transitoria.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		materialRepo repository.MaterialRepository,
		movementRepo repository.MovementRepository,
		issueRepo repository.IssueRepository,
		shipmentRepo repository.ShipmentRepository,
	) error) error
}
