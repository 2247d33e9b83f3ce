package sync

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-patio/internal/domain"
)

const cachePrefix = "cache_"

// DefaultCacheTTL ventana de frescura por defecto de la caché de lectura.
const DefaultCacheTTL = 30 * time.Minute

// cacheEntry es la forma persistida de una entrada de caché.
type cacheEntry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"` // epoch millis de captura
}

// Cache es la caché de lectura del dispositivo: instantáneas con timestamp
// que sirven listados y detalles cuando el remoto no responde. Get devuelve
// los datos aunque estén vencidos (sin conexión son lo único disponible);
// la frescura se consulta aparte con IsFresh. Es estrictamente un respaldo
// de lectura: nunca amortigua escrituras, eso es de la cola offline.
type Cache struct {
	store LocalStore
	ttl   time.Duration
	now   func() time.Time
}

// NewCache construye la caché sobre el almacenamiento local.
func NewCache(store LocalStore, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{store: store, ttl: ttl, now: time.Now}
}

// Get deserializa la entrada en dest y reporta si existía. Nunca falla por
// vencimiento; una entrada corrupta se trata como ausente.
func (c *Cache) Get(key string, dest any) (bool, error) {
	raw, ok, err := c.store.Get(cachePrefix + key)
	if err != nil {
		return false, fmt.Errorf("%w: leer caché: %v", domain.ErrStorage, err)
	}
	if !ok {
		return false, nil
	}
	var entry cacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return false, nil
	}
	if err := json.Unmarshal(entry.Data, dest); err != nil {
		return false, nil
	}
	return true, nil
}

// Set guarda el valor con el instante de captura.
func (c *Cache) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("serializar entrada de caché: %w", err)
	}
	entry := cacheEntry{Data: data, Timestamp: c.now().UnixMilli()}
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("serializar entrada de caché: %w", err)
	}
	if err := c.store.Set(cachePrefix+key, string(raw)); err != nil {
		return fmt.Errorf("%w: guardar caché: %v", domain.ErrStorage, err)
	}
	return nil
}

// IsFresh indica si la entrada existe y está dentro de la ventana de TTL.
func (c *Cache) IsFresh(key string) bool {
	raw, ok, err := c.store.Get(cachePrefix + key)
	if err != nil || !ok {
		return false
	}
	var entry cacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return false
	}
	captured := time.UnixMilli(entry.Timestamp)
	return c.now().Sub(captured) < c.ttl
}
