package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Inventario-patio/internal/application/inventory"
	"github.com/jhoicas/Inventario-patio/internal/application/receiving"
	"github.com/jhoicas/Inventario-patio/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and receiving.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ receiving.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos de inventario
// atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	materialRepo repository.MaterialRepository,
	movementRepo repository.MovementRepository,
	issueRepo repository.IssueRepository,
	shipmentRepo repository.ShipmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	materialRepo := NewMaterialRepository(tx)
	movementRepo := NewMovementRepository(tx)
	issueRepo := NewIssueRepository(tx)
	shipmentRepo := NewShipmentRepository(tx)

	if err := fn(materialRepo, movementRepo, issueRepo, shipmentRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunReceiving inicia una transacción con los repos que necesita una
// recepción (QR, registro y material aterrizan juntos).
func (r *TxRunner) RunReceiving(ctx context.Context, fn func(
	qrRepo repository.QRCodeRepository,
	receivingRepo repository.ReceivingRepository,
	materialRepo repository.MaterialRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	qrRepo := NewQRCodeRepository(tx)
	receivingRepo := NewReceivingRepository(tx)
	materialRepo := NewMaterialRepository(tx)

	if err := fn(qrRepo, receivingRepo, materialRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
