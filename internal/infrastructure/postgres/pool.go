package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Inventario-patio/pkg/config"
)

// NewPool crea el pool de conexiones al PostgreSQL remoto. No hace ping al
// arrancar: el dispositivo puede iniciar sin conectividad y las conexiones
// se establecen de forma perezosa cuando el remoto vuelve a ser alcanzable.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	// Pool pequeño: es un agente de dispositivo, no un servidor.
	poolConfig.MaxConns = 4
	poolConfig.MinConns = 0
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// Registrar codec para NUMERIC/DECIMAL -> shopspring/decimal (todas las conexiones del pool).
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	return pool, nil
}

// Prober implementa el sondeo de conectividad contra el remoto: un ping
// con timeout corto. Devuelve (false, nil) cuando el remoto no responde;
// error solo si el sondeo en sí no se pudo ejecutar.
type Prober struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewProber construye el prober sobre el pool.
func NewProber(pool *pgxpool.Pool, timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Prober{pool: pool, timeout: timeout}
}

// Probe reporta si el almacén remoto es alcanzable.
func (p *Prober) Probe(ctx context.Context) (bool, error) {
	pingCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.pool.Ping(pingCtx); err != nil {
		return false, nil
	}
	return true, nil
}
