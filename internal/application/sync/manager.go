package sync

import (
	"context"
	gosync "sync"
	"time"

	"github.com/jhoicas/Inventario-patio/pkg/logger"
)

// Result resume un drenado: cuántas entradas se replicaron con éxito y
// cuántas siguen pendientes (para el indicador "N acciones pendientes").
type Result struct {
	Processed int `json:"processed"`
	Pending   int `json:"pending"`
}

// Manager orquesta el drenado de la cola offline. Máquina de dos estados,
// Idle y Draining: una transición a online dispara el drenado salvo que ya
// haya uno en curso (un disparo concurrente es un no-op, no un segundo run
// encolado). Durante el drenado procesa la instantánea de la cola
// estrictamente en orden y se detiene en el primer fallo: una acción
// posterior del mismo material asume el estado que dejaron las anteriores,
// así que saltarse una entrada fallida aplicaría cantidades sobre un estado
// que aún no existe.
type Manager struct {
	queue   *Queue
	exec    Executor
	timeout time.Duration // timeout por acción para no colgar el drenado
	log     *logger.Logger

	mu       gosync.Mutex
	draining bool
}

// NewManager construye el gestor de sincronización.
func NewManager(queue *Queue, exec Executor, timeout time.Duration, log *logger.Logger) *Manager {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Manager{queue: queue, exec: exec, timeout: timeout, log: log}
}

// Draining indica si hay un drenado en curso.
func (m *Manager) Draining() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draining
}

// Drain toma una instantánea de la cola y replica las acciones en orden de
// inserción. Cada entrada se elimina de la cola solo después de que su
// replay tenga éxito; ante el primer fallo se detiene de inmediato dejando
// esa entrada y las siguientes para el próximo disparo. Los fallos remotos
// o de negocio detienen el run sin tumbar el proceso; un ErrStorage de la
// cola indica corrupción local y sí se propaga.
func (m *Manager) Drain(ctx context.Context) (Result, error) {
	m.mu.Lock()
	if m.draining {
		m.mu.Unlock()
		return Result{}, nil
	}
	m.draining = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.draining = false
		m.mu.Unlock()
	}()

	items, err := m.queue.DequeueAll()
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, item := range items {
		actionCtx, cancel := context.WithTimeout(ctx, m.timeout)
		err := m.exec.Execute(actionCtx, item)
		cancel()
		if err != nil {
			m.log.Warn().
				Str("action_id", item.ID).
				Str("kind", item.Kind).
				Err(err).
				Msg("replay fallido; drenado detenido")
			break
		}
		if err := m.queue.Remove(item.ID); err != nil {
			// Corrupción del almacenamiento local: visible, nunca silenciosa.
			return res, err
		}
		res.Processed++
	}

	pending, lenErr := m.queue.Len()
	res.Pending = pending
	if lenErr != nil {
		return res, lenErr
	}
	if res.Processed > 0 {
		m.log.Info().
			Int("processed", res.Processed).
			Int("pending", res.Pending).
			Msg("drenado de cola completado")
	}
	return res, nil
}

// Watch suscribe el gestor al monitor de conectividad: cada transición
// offline→online dispara un drenado en segundo plano. Devuelve la función
// de cancelación de la suscripción.
func (m *Manager) Watch(monitor *Monitor) (cancel func()) {
	var prev bool
	first := true
	return monitor.Subscribe(func(online bool) {
		wasOffline := !first && !prev
		prev = online
		first = false
		if online && wasOffline {
			go func() {
				if _, err := m.Drain(context.Background()); err != nil {
					m.log.Error().Err(err).Msg("drenado tras reconexión")
				}
			}()
		}
	})
}
