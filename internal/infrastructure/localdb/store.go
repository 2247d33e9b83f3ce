package localdb

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	k TEXT PRIMARY KEY,
	v TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);`

// Store es el almacenamiento local clave→valor del dispositivo sobre
// SQLite. Lo comparten la cola offline y la caché de lectura; el archivo
// sobrevive reinicios del proceso y cortes de conectividad.
type Store struct {
	db *sql.DB
}

// Open abre (o crea) la base local y aplica el esquema. WAL y una sola
// conexión: un único escritor sobre el archivo.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir base local: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrar base local: %w", err)
	}
	return &Store{db: db}, nil
}

// Get devuelve el valor y si la clave existe.
func (s *Store) Get(key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow(`SELECT v FROM kv WHERE k = ?`, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("leer clave %q: %w", key, err)
	}
	return v, true, nil
}

// Set inserta o reemplaza el valor de la clave.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (k, v, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(k) DO UPDATE SET v = excluded.v, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("guardar clave %q: %w", key, err)
	}
	return nil
}

// Remove elimina la clave; eliminar una clave ausente no es un error.
func (s *Store) Remove(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE k = ?`, key); err != nil {
		return fmt.Errorf("eliminar clave %q: %w", key, err)
	}
	return nil
}

// Close cierra la base local.
func (s *Store) Close() error {
	return s.db.Close()
}
