package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Con conexión la acción se ejecuta directo contra el remoto, sin encolar.
func TestDispatcher_OnlineEjecutaDirecto(t *testing.T) {
	q := NewQueue(newFakeStore())
	exec := newFakeExecutor()
	monitor := NewMonitor(&fakeProber{results: []bool{true}}, time.Second)
	d := NewDispatcher(monitor, q, exec, testLogger(t))

	queued, err := d.EnqueueOrExecute(context.Background(), transferAction("mat-1"))
	require.NoError(t, err)
	assert.False(t, queued)
	assert.Len(t, exec.executed, 1)

	n, err := q.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

// Sin conexión la acción se encola y no se toca el remoto.
func TestDispatcher_OfflineEncola(t *testing.T) {
	q := NewQueue(newFakeStore())
	exec := newFakeExecutor()
	monitor := NewMonitor(&fakeProber{results: []bool{false}}, time.Second)
	monitor.Refresh(context.Background())
	d := NewDispatcher(monitor, q, exec, testLogger(t))

	queued, err := d.EnqueueOrExecute(context.Background(), transferAction("mat-1"))
	require.NoError(t, err)
	assert.True(t, queued)
	assert.Empty(t, exec.executed)

	n, err := q.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// Con conexión, un fallo remoto se devuelve al caller: no se encola a sus
// espaldas.
func TestDispatcher_FalloRemotoNoSeEncola(t *testing.T) {
	q := NewQueue(newFakeStore())
	exec := newFakeExecutor()
	exec.failAt = 0
	monitor := NewMonitor(&fakeProber{results: []bool{true}}, time.Second)
	d := NewDispatcher(monitor, q, exec, testLogger(t))

	queued, err := d.EnqueueOrExecute(context.Background(), transferAction("mat-1"))
	require.Error(t, err)
	assert.False(t, queued)

	n, lenErr := q.Len()
	require.NoError(t, lenErr)
	assert.Equal(t, 0, n)
}
