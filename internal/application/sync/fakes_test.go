package sync

import (
	"context"
	"errors"
	gosync "sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-patio/internal/domain/entity"
	"github.com/jhoicas/Inventario-patio/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes compartidos del paquete
// ──────────────────────────────────────────────────────────────────────────────

// fakeStore es un LocalStore en memoria con inyección de fallos.
type fakeStore struct {
	data    map[string]string
	failGet bool
	failSet bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string)}
}

func (s *fakeStore) Get(key string) (string, bool, error) {
	if s.failGet {
		return "", false, errors.New("disco dañado")
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *fakeStore) Set(key, value string) error {
	if s.failSet {
		return errors.New("disco dañado")
	}
	s.data[key] = value
	return nil
}

func (s *fakeStore) Remove(key string) error {
	delete(s.data, key)
	return nil
}

// fakeProber devuelve una secuencia programada de estados.
type fakeProber struct {
	results []bool
	errs    []error
	calls   int
}

func (p *fakeProber) Probe(ctx context.Context) (bool, error) {
	i := p.calls
	p.calls++
	if i >= len(p.results) {
		i = len(p.results) - 1
	}
	var err error
	if i < len(p.errs) {
		err = p.errs[i]
	}
	return p.results[i], err
}

// fakeExecutor registra las acciones ejecutadas y puede fallar a partir de
// una posición dada (failAt, basado en 0; -1 = nunca falla).
type fakeExecutor struct {
	executed []string
	kinds    []string
	failAt   int
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{failAt: -1}
}

func (e *fakeExecutor) Execute(ctx context.Context, action *entity.QueuedAction) error {
	if e.failAt >= 0 && len(e.executed) == e.failAt {
		return errors.New("remoto rechazó la acción")
	}
	e.executed = append(e.executed, action.ID)
	e.kinds = append(e.kinds, action.Kind)
	return nil
}

// flappingProber alterna online/offline en cada sondeo; apto para llamadas
// concurrentes.
type flappingProber struct {
	mu   gosync.Mutex
	last bool
}

func (p *flappingProber) Probe(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = !p.last
	return p.last, nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func transferAction(materialID string) *entity.QueuedAction {
	return &entity.QueuedAction{
		Kind: entity.ActionKindTransfer,
		Transfer: &entity.TransferPayload{
			MaterialID:   materialID,
			ToLocationID: "loc-1",
			MovedBy:      "operador",
		},
	}
}

func issueAction(materialID string) *entity.QueuedAction {
	return &entity.QueuedAction{
		Kind: entity.ActionKindIssue,
		Issue: &entity.IssuePayload{
			MaterialID: materialID,
			JobNumber:  "JOB-7",
			Quantity:   decimal.NewFromInt(10),
			IssuedBy:   "operador",
		},
	}
}
