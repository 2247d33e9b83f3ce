package sync

import (
	"context"

	"github.com/jhoicas/Inventario-patio/internal/domain/entity"
)

// LocalStore puerto de almacenamiento local clave→valor persistente.
// Lo comparten la cola offline y la caché de lectura; sobrevive reinicios
// del proceso.
type LocalStore interface {
	// Get devuelve el valor y si la clave existe.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Prober consulta el transporte subyacente para saber si el almacén remoto
// es alcanzable en este momento.
type Prober interface {
	Probe(ctx context.Context) (bool, error)
}

// Executor ejecuta una acción encolada contra el almacén remoto,
// despachando según su tipo a la operación de inventario correspondiente.
type Executor interface {
	Execute(ctx context.Context, action *entity.QueuedAction) error
}
