package sync

import (
	"context"
	gosync "sync"
	"time"
)

// Monitor observa la alcanzabilidad del almacén remoto: expone el estado
// online/offline actual y entrega eventos de transición a cualquier número
// de suscriptores. No dispara sincronizaciones; esa responsabilidad es del
// Manager, que se suscribe a este componente.
type Monitor struct {
	prober   Prober
	interval time.Duration

	mu     gosync.Mutex
	online bool
	subs   map[int]func(online bool)
	nextID int

	// deliverMu serializa la entrega a los suscriptores: se mantiene desde
	// el cambio de estado hasta que el último listener retorna, de modo que
	// dos Refresh concurrentes nunca ejecutan un mismo callback en paralelo
	// ni entregan transiciones fuera de orden.
	deliverMu gosync.Mutex
}

// NewMonitor construye el monitor. El estado inicial es online: si nunca se
// ha podido sondear, se asume conectividad y el primer fallo real corrige.
func NewMonitor(prober Prober, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Monitor{
		prober:   prober,
		interval: interval,
		online:   true,
		subs:     make(map[int]func(bool)),
	}
}

// Online devuelve el estado actual.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Subscribe registra un listener. Entrega de forma síncrona el estado
// actual al suscribirse y después cada transición, siempre desde una sola
// goroutine a la vez. Devuelve una función para cancelar la suscripción.
func (m *Monitor) Subscribe(fn func(online bool)) (cancel func()) {
	m.deliverMu.Lock()
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	current := m.online
	m.mu.Unlock()

	fn(current)
	m.deliverMu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Start ejecuta el bucle de sondeo hasta que el contexto se cancele.
// Sondea inmediatamente al arrancar y luego en cada intervalo.
func (m *Monitor) Start(ctx context.Context) {
	m.Refresh(ctx)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Refresh(ctx)
		}
	}
}

// Refresh consulta el transporte una vez y actualiza el estado. Si el sondeo
// en sí falla (no "el remoto no responde" sino "no se pudo preguntar"), se
// conserva el último estado conocido en vez de fallar.
func (m *Monitor) Refresh(ctx context.Context) {
	online, err := m.prober.Probe(ctx)
	if err != nil {
		return
	}
	m.setOnline(online)
}

func (m *Monitor) setOnline(online bool) {
	m.deliverMu.Lock()
	defer m.deliverMu.Unlock()

	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	listeners := make([]func(bool), 0, len(m.subs))
	for _, fn := range m.subs {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(online)
	}
}
