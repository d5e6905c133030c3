package repository

import (
	"context"

	"github.com/jhoicas/Inventario-dental-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del ledger (solo inserción y lectura).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListBySupply ordena por created_at DESC, id DESC. limit <= 0 devuelve todos.
	ListBySupply(ctx context.Context, supplyID string, limit, offset int) ([]*entity.StockMovement, error)
}
