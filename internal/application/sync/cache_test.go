package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedList struct {
	Names []string `json:"names"`
}

// Get devuelve los datos aunque la entrada esté vencida: sin conexión, una
// instantánea vieja es lo único disponible.
func TestCache_GetDevuelveDatosVencidos(t *testing.T) {
	store := newFakeStore()
	c := NewCache(store, 30*time.Minute)

	captured := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return captured }
	require.NoError(t, c.Set("materials", cachedList{Names: []string{"viga", "placa"}}))

	// Dos horas después: muy fuera de la ventana de frescura.
	c.now = func() time.Time { return captured.Add(2 * time.Hour) }

	var got cachedList
	found, err := c.Get("materials", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"viga", "placa"}, got.Names)
	assert.False(t, c.IsFresh("materials"))
}

// IsFresh respeta la ventana de TTL.
func TestCache_IsFreshDentroYFueraDeVentana(t *testing.T) {
	c := NewCache(newFakeStore(), 30*time.Minute)
	captured := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return captured }
	require.NoError(t, c.Set("materials", cachedList{Names: []string{"viga"}}))

	c.now = func() time.Time { return captured.Add(29 * time.Minute) }
	assert.True(t, c.IsFresh("materials"))

	c.now = func() time.Time { return captured.Add(31 * time.Minute) }
	assert.False(t, c.IsFresh("materials"))
}

// Una clave ausente no es un error: found=false.
func TestCache_ClaveAusente(t *testing.T) {
	c := NewCache(newFakeStore(), 30*time.Minute)

	var got cachedList
	found, err := c.Get("nada", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, c.IsFresh("nada"))
}

// Una entrada corrupta se trata como ausente, no como error fatal.
func TestCache_EntradaCorruptaComoAusente(t *testing.T) {
	store := newFakeStore()
	store.data[cachePrefix+"materials"] = "{roto"
	c := NewCache(store, 30*time.Minute)

	var got cachedList
	found, err := c.Get("materials", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

// Set sobrescribe la instantánea anterior y renueva su timestamp.
func TestCache_SetRenuevaTimestamp(t *testing.T) {
	c := NewCache(newFakeStore(), 30*time.Minute)
	captured := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return captured }
	require.NoError(t, c.Set("materials", cachedList{Names: []string{"viga"}}))

	// Una hora después se refresca desde el remoto.
	c.now = func() time.Time { return captured.Add(time.Hour) }
	require.NoError(t, c.Set("materials", cachedList{Names: []string{"viga", "tubo"}}))

	c.now = func() time.Time { return captured.Add(time.Hour + time.Minute) }
	assert.True(t, c.IsFresh("materials"))

	var got cachedList
	found, err := c.Get("materials", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"viga", "tubo"}, got.Names)
}
