package repository

import "context"

// Store es el almacén transaccional. Los repositorios que expone operan fuera de transacción.
type Store interface {
	Begin(ctx context.Context) (Tx, error)
	Supplies() SupplyRepository
	Movements() StockMovementRepository
	Ping(ctx context.Context) error
}

// Tx es una transacción explícita. Rollback después de Commit no tiene efecto,
// por lo que puede diferirse siempre justo después de Begin.
type Tx interface {
	Supplies() SupplyRepository
	Movements() StockMovementRepository
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
