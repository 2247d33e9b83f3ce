package localdb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patio-test.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestStore_GetSetRemove(t *testing.T) {
	s, _ := openTestStore(t)

	_, ok, err := s.Get("clave")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("clave", "valor"))
	v, ok, err := s.Get("clave")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "valor", v)

	// Set sobre clave existente reemplaza
	require.NoError(t, s.Set("clave", "otro"))
	v, _, err = s.Get("clave")
	require.NoError(t, err)
	assert.Equal(t, "otro", v)

	require.NoError(t, s.Remove("clave"))
	_, ok, err = s.Get("clave")
	require.NoError(t, err)
	assert.False(t, ok)

	// Eliminar clave ausente no es error
	require.NoError(t, s.Remove("clave"))
}

// El archivo sobrevive al cierre del proceso: reabrir ve los datos.
func TestStore_PersisteEntreAperturas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patio-test.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Set("offline_queue", `[{"id":"a1"}]`))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	v, ok, err := s2.Get("offline_queue")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":"a1"}]`, v)
}
