package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-patio/internal/domain"
)

// La cola conserva exactamente el orden de inserción.
func TestQueue_ConservaOrdenDeInsercion(t *testing.T) {
	store := newFakeStore()
	q := NewQueue(store)

	id1, err := q.Enqueue(transferAction("mat-1"))
	require.NoError(t, err)
	id2, err := q.Enqueue(transferAction("mat-2"))
	require.NoError(t, err)
	id3, err := q.Enqueue(transferAction("mat-3"))
	require.NoError(t, err)

	items, err := q.DequeueAll()
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, id1, items[0].ID)
	assert.Equal(t, id2, items[1].ID)
	assert.Equal(t, id3, items[2].ID)
}

// DequeueAll no elimina: la eliminación es explícita vía Remove.
func TestQueue_DequeueAllNoElimina(t *testing.T) {
	q := NewQueue(newFakeStore())
	_, err := q.Enqueue(transferAction("mat-1"))
	require.NoError(t, err)

	_, err = q.DequeueAll()
	require.NoError(t, err)

	n, err := q.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// Remove elimina solo la entrada indicada y es idempotente.
func TestQueue_RemoveIdempotente(t *testing.T) {
	q := NewQueue(newFakeStore())
	id1, err := q.Enqueue(transferAction("mat-1"))
	require.NoError(t, err)
	id2, err := q.Enqueue(transferAction("mat-2"))
	require.NoError(t, err)

	require.NoError(t, q.Remove(id1))
	require.NoError(t, q.Remove(id1)) // id ausente: no es error

	items, err := q.DequeueAll()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, id2, items[0].ID)
}

// La cola sobrevive a un reinicio del proceso: una instancia nueva sobre el
// mismo almacenamiento ve las entradas pendientes.
func TestQueue_SobreviveReinicio(t *testing.T) {
	store := newFakeStore()
	q1 := NewQueue(store)
	id, err := q1.Enqueue(transferAction("mat-1"))
	require.NoError(t, err)

	q2 := NewQueue(store)
	items, err := q2.DequeueAll()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)
	require.NotNil(t, items[0].Transfer)
	assert.Equal(t, "mat-1", items[0].Transfer.MaterialID)
}

// Clear vacía la cola por completo.
func TestQueue_Clear(t *testing.T) {
	q := NewQueue(newFakeStore())
	_, err := q.Enqueue(transferAction("mat-1"))
	require.NoError(t, err)

	require.NoError(t, q.Clear())

	n, err := q.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

// Un fallo del medio de almacenamiento se devuelve envuelto en ErrStorage,
// nunca se pierde en silencio.
func TestQueue_FalloDeAlmacenamientoEsVisible(t *testing.T) {
	store := newFakeStore()
	store.failSet = true
	q := NewQueue(store)

	_, err := q.Enqueue(transferAction("mat-1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
}

// Una cola corrupta en disco es un ErrStorage, no un pánico ni una cola vacía.
func TestQueue_ColaCorruptaEsError(t *testing.T) {
	store := newFakeStore()
	store.data[queueKey] = "{no es json de cola"
	q := NewQueue(store)

	_, err := q.DequeueAll()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
}
