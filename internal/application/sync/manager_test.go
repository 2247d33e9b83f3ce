package sync

import (
	"context"
	gosync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-patio/internal/domain/entity"
)

func enqueueN(t *testing.T, q *Queue, ids ...string) []string {
	t.Helper()
	out := make([]string, 0, len(ids))
	for _, materialID := range ids {
		id, err := q.Enqueue(transferAction(materialID))
		require.NoError(t, err)
		out = append(out, id)
	}
	return out
}

// El drenado replica las acciones en orden de inserción y elimina cada una
// solo tras su éxito.
func TestManager_DrenaEnOrden(t *testing.T) {
	q := NewQueue(newFakeStore())
	ids := enqueueN(t, q, "mat-1", "mat-2", "mat-3")
	exec := newFakeExecutor()
	m := NewManager(q, exec, time.Second, testLogger(t))

	res, err := m.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Processed)
	assert.Equal(t, 0, res.Pending)
	assert.Equal(t, ids, exec.executed)

	n, err := q.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

// Un traspaso seguido de una entrega del mismo material se replica en ese
// mismo orden: la entrega asume la ubicación que dejó el traspaso.
func TestManager_DrenaTraspasoYEntregaEnOrden(t *testing.T) {
	q := NewQueue(newFakeStore())
	transferID, err := q.Enqueue(transferAction("mat-1"))
	require.NoError(t, err)
	issueID, err := q.Enqueue(issueAction("mat-1"))
	require.NoError(t, err)

	exec := newFakeExecutor()
	m := NewManager(q, exec, time.Second, testLogger(t))

	res, err := m.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Processed)
	assert.Equal(t, []string{transferID, issueID}, exec.executed)
	assert.Equal(t, []string{entity.ActionKindTransfer, entity.ActionKindIssue}, exec.kinds)
}

// El primer fallo detiene el run: la entrada fallida y las posteriores
// quedan en la cola para el próximo disparo.
func TestManager_SeDetieneEnElPrimerFallo(t *testing.T) {
	q := NewQueue(newFakeStore())
	ids := enqueueN(t, q, "mat-1", "mat-2", "mat-3")
	exec := newFakeExecutor()
	exec.failAt = 1 // la segunda acción falla
	m := NewManager(q, exec, time.Second, testLogger(t))

	res, err := m.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 2, res.Pending)
	assert.Equal(t, ids[:1], exec.executed)

	// La cola conserva la fallida y la posterior, en orden.
	items, err := q.DequeueAll()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, ids[1], items[0].ID)
	assert.Equal(t, ids[2], items[1].ID)
}

// El siguiente drenado retoma desde la entrada fallida, sin repetir las ya
// replicadas (entrega al menos una vez, nunca re-ejecución de las exitosas).
func TestManager_ReintentaDesdeLaFallida(t *testing.T) {
	q := NewQueue(newFakeStore())
	ids := enqueueN(t, q, "mat-1", "mat-2")
	exec := newFakeExecutor()
	exec.failAt = 1
	m := NewManager(q, exec, time.Second, testLogger(t))

	_, err := m.Drain(context.Background())
	require.NoError(t, err)

	exec.failAt = -1
	res, err := m.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 0, res.Pending)
	assert.Equal(t, ids, exec.executed)
}

// Un disparo mientras hay drenado en curso es un no-op, no un segundo run.
func TestManager_DisparoConcurrenteEsNoOp(t *testing.T) {
	q := NewQueue(newFakeStore())
	enqueueN(t, q, "mat-1")
	exec := newFakeExecutor()
	m := NewManager(q, exec, time.Second, testLogger(t))

	m.mu.Lock()
	m.draining = true
	m.mu.Unlock()

	res, err := m.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Processed)
	assert.Empty(t, exec.executed)

	m.mu.Lock()
	m.draining = false
	m.mu.Unlock()
}

// Watch dispara un drenado en la transición offline→online, no en cada
// evento online.
func TestManager_WatchDrenaTrasReconexion(t *testing.T) {
	q := NewQueue(newFakeStore())
	enqueueN(t, q, "mat-1")
	exec := newFakeExecutor()
	m := NewManager(q, exec, time.Second, testLogger(t))

	prober := &fakeProber{results: []bool{false, true}}
	monitor := NewMonitor(prober, time.Second)
	cancel := m.Watch(monitor) // entrega síncrona del estado inicial online: no drena
	defer cancel()

	ctx := context.Background()
	monitor.Refresh(ctx) // online -> offline
	monitor.Refresh(ctx) // offline -> online: dispara el drenado en segundo plano

	assert.Eventually(t, func() bool {
		n, err := q.Len()
		return err == nil && n == 0
	}, 2*time.Second, 10*time.Millisecond)
}

// Refresh llega a la vez desde el bucle de sondeo y desde el handler de
// sincronización; el callback de Watch mantiene su estado previo sin
// carreras bajo ese vaivén concurrente.
func TestManager_WatchSoportaRefreshConcurrente(t *testing.T) {
	q := NewQueue(newFakeStore())
	enqueueN(t, q, "mat-1")
	exec := newFakeExecutor()
	m := NewManager(q, exec, time.Second, testLogger(t))

	monitor := NewMonitor(&flappingProber{}, time.Minute)
	cancel := m.Watch(monitor)
	defer cancel()

	var wg gosync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				monitor.Refresh(context.Background())
			}
		}()
	}
	wg.Wait()

	// El vaivén garantiza al menos una reconexión, que debe drenar la cola.
	assert.Eventually(t, func() bool {
		n, err := q.Len()
		return err == nil && n == 0
	}, 2*time.Second, 10*time.Millisecond)
}
