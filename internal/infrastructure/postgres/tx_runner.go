package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-api/internal/application/approval"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/submission"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Ensure TxRunner implements every application-side runner port.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ submission.TxRunner = (*TxRunner)(nil)
var _ approval.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunLedger inicia una transacción con los repos del libro de stock
// (ediciones directas del maestro: SetOnHand).
func (r *TxRunner) RunLedger(ctx context.Context, fn func(
	items repository.StockItemRepository,
	movements repository.LedgerMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockItemRepository(tx), NewLedgerMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSubmission inicia una transacción para la promoción de borradores a
// registros pendientes (todo-o-nada: crear registros + limpiar borradores).
func (r *TxRunner) RunSubmission(ctx context.Context, fn func(
	requestDrafts repository.RequestDraftRepository,
	proposalDrafts repository.ProposalDraftRepository,
	requests repository.StockRequestRepository,
	proposals repository.StockProposalRepository,
	items repository.StockItemRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewRequestDraftRepository(tx),
		NewProposalDraftRepository(tx),
		NewStockRequestRepository(tx),
		NewStockProposalRepository(tx),
		NewStockItemRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunApproval inicia una transacción para una transición de estado: cambio de
// estado del registro + mutación de contadores + movimiento del libro.
func (r *TxRunner) RunApproval(ctx context.Context, fn func(
	items repository.StockItemRepository,
	movements repository.LedgerMovementRepository,
	requests repository.StockRequestRepository,
	proposals repository.StockProposalRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewStockItemRepository(tx),
		NewLedgerMovementRepository(tx),
		NewStockRequestRepository(tx),
		NewStockProposalRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
