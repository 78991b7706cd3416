package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/verdeflow/trazo-api/internal/application/batches"
)

var _ batches.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks del motor de lotes dentro de una transacción
// PostgreSQL. Todos los repositorios que recibe el callback van atados a la
// misma tx: la operación de ciclo de vida entera hace Commit o Rollback.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos batches.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := batches.TxRepos{
		Batches:    NewBatchRepository(tx),
		Plants:     NewPlantRepository(tx),
		Areas:      NewAreaRepository(tx),
		Orders:     NewProductionOrderRepository(tx),
		Activities: NewActivityRepository(tx),
		Movements:  NewBatchMovementRepository(tx),
		Losses:     NewBatchLossRepository(tx),
		Harvests:   NewBatchHarvestRepository(tx),
		Codes:      NewBatchCodeRepository(tx),
		Cultivars:  NewCultivarRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
