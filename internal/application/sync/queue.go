package sync

import (
	"encoding/json"
	"fmt"
	gosync "sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-patio/internal/domain"
	"github.com/jhoicas/Inventario-patio/internal/domain/entity"
)

const queueKey = "offline_queue"

// Queue es la cola durable de acciones pendientes: una secuencia append-only
// persistida en el almacenamiento local que conserva exactamente el orden de
// inserción. No reordena, no deduplica ni fusiona acciones: la corrección de
// una acción posterior depende de que las anteriores del mismo material ya
// hayan aterrizado. El mutex serializa el acceso de la UI (encolar) y del
// gestor de sincronización (leer/eliminar).
type Queue struct {
	mu    gosync.Mutex
	store LocalStore
	now   func() time.Time
}

// NewQueue construye la cola sobre el almacenamiento local.
func NewQueue(store LocalStore) *Queue {
	return &Queue{store: store, now: time.Now}
}

// Enqueue agrega la acción al final de la secuencia persistida y devuelve su
// id. Un fallo del medio de almacenamiento es fatal para la operación y se
// devuelve envuelto en domain.ErrStorage (nunca se pierde en silencio).
func (q *Queue) Enqueue(action *entity.QueuedAction) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	items, err := q.load()
	if err != nil {
		return "", err
	}
	action.ID = uuid.New().String()
	action.CreatedAt = q.now().UTC()
	items = append(items, action)
	if err := q.save(items); err != nil {
		return "", err
	}
	return action.ID, nil
}

// DequeueAll devuelve todas las acciones pendientes en orden de inserción
// sin eliminarlas. La eliminación ocurre entrada por entrada vía Remove,
// solo después de que su replay tenga éxito.
func (q *Queue) DequeueAll() ([]*entity.QueuedAction, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.load()
}

// Remove elimina exactamente una entrada por id. Es idempotente: eliminar
// un id ausente no es un error.
func (q *Queue) Remove(id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	items, err := q.load()
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	return q.save(kept)
}

// Clear vacía la cola. Solo para reinicios explícitos del usuario; el flujo
// normal de sincronización nunca la llama.
func (q *Queue) Clear() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.store.Remove(queueKey); err != nil {
		return fmt.Errorf("%w: vaciar cola: %v", domain.ErrStorage, err)
	}
	return nil
}

// Len devuelve el número de acciones pendientes.
func (q *Queue) Len() (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	items, err := q.load()
	return len(items), err
}

func (q *Queue) load() ([]*entity.QueuedAction, error) {
	raw, ok, err := q.store.Get(queueKey)
	if err != nil {
		return nil, fmt.Errorf("%w: leer cola: %v", domain.ErrStorage, err)
	}
	if !ok {
		return nil, nil
	}
	var items []*entity.QueuedAction
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: cola corrupta: %v", domain.ErrStorage, err)
	}
	return items, nil
}

func (q *Queue) save(items []*entity.QueuedAction) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: serializar cola: %v", domain.ErrStorage, err)
	}
	if err := q.store.Set(queueKey, string(raw)); err != nil {
		return fmt.Errorf("%w: guardar cola: %v", domain.ErrStorage, err)
	}
	return nil
}
