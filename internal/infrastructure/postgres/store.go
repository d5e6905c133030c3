package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Inventario-dental-api/internal/domain/repository"
)

var (
	_ repository.Store = (*Store)(nil)
	_ repository.Tx    = (*Tx)(nil)
)

// Store almacén transaccional sobre un pool PostgreSQL.
type Store struct {
	pool      *pgxpool.Pool
	supplies  *SupplyRepo
	movements *StockMovementRepo
}

// NewStore construye el almacén con el pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:      pool,
		supplies:  NewSupplyRepository(pool),
		movements: NewStockMovementRepository(pool),
	}
}

// Begin abre una transacción READ COMMITTED; el bloqueo de filas lo hace GetForUpdate.
func (s *Store) Begin(ctx context.Context) (repository.Tx, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, wrapErr("begin transaction", err)
	}
	return &Tx{
		tx:        tx,
		supplies:  NewSupplyRepository(tx),
		movements: NewStockMovementRepository(tx),
	}, nil
}

func (s *Store) Supplies() repository.SupplyRepository        { return s.supplies }
func (s *Store) Movements() repository.StockMovementRepository { return s.movements }

// Ping verifica la conectividad con la BD.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping DB: %w", err)
	}
	return nil
}

// Tx transacción con repositorios atados a ella.
type Tx struct {
	tx        pgx.Tx
	supplies  *SupplyRepo
	movements *StockMovementRepo
}

func (t *Tx) Supplies() repository.SupplyRepository        { return t.supplies }
func (t *Tx) Movements() repository.StockMovementRepository { return t.movements }

func (t *Tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return wrapErr("commit transaction", err)
	}
	return nil
}

// Rollback es no-op si la transacción ya terminó (pgx devuelve ErrTxClosed).
func (t *Tx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	return nil
}
