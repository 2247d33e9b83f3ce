package sync

import (
	"context"

	"github.com/jhoicas/Inventario-patio/internal/domain/entity"
	"github.com/jhoicas/Inventario-patio/pkg/logger"
)

// Dispatcher es la frontera con la UI: decide "ejecutar directo" o
// "encolar" según el estado de conectividad actual. La decisión vive aquí,
// no dentro de las operaciones de inventario.
type Dispatcher struct {
	monitor *Monitor
	queue   *Queue
	exec    Executor
	log     *logger.Logger
}

// NewDispatcher construye el dispatcher.
func NewDispatcher(monitor *Monitor, queue *Queue, exec Executor, log *logger.Logger) *Dispatcher {
	return &Dispatcher{monitor: monitor, queue: queue, exec: exec, log: log}
}

// EnqueueOrExecute ejecuta la acción contra el remoto si hay conexión; si
// no, la encola para el próximo drenado y devuelve queued=true. Con
// conexión, un fallo remoto se devuelve al caller como error reintentable
// (no se encola a sus espaldas). Un fallo al encolar es un ErrStorage y se
// propaga: nunca se pierde una acción en silencio.
func (d *Dispatcher) EnqueueOrExecute(ctx context.Context, action *entity.QueuedAction) (queued bool, err error) {
	if d.monitor.Online() {
		return false, d.exec.Execute(ctx, action)
	}
	id, err := d.queue.Enqueue(action)
	if err != nil {
		return false, err
	}
	d.log.Info().
		Str("action_id", id).
		Str("kind", action.Kind).
		Msg("sin conexión; acción encolada")
	return true, nil
}
