package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stock-core/internal/application/stock"
	"github.com/jhoicas/stock-core/internal/domain/repository"
)

// Ensure TxRunner implements stock.TxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Un rollback descarta también los toques de invalidación:
// forman parte de la misma transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	stockProductRepo repository.StockProductRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	touchRepo repository.TouchRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stockRepo := NewStockRepository(tx)
	stockProductRepo := NewStockProductRepository(tx)
	productRepo := NewProductRepository(tx)
	storeRepo := NewStoreRepository(tx)
	touchRepo := NewTouchRepository(tx)

	if err := fn(stockRepo, stockProductRepo, productRepo, storeRepo, touchRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
