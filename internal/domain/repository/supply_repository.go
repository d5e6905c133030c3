package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-dental-api/internal/domain/entity"
)

// SupplyFilter criterios de listado. Query vacío = todos; Limit <= 0 = sin límite.
type SupplyFilter struct {
	Query        string // subcadena en nombre o código, sin distinguir mayúsculas
	LowStockOnly bool   // solo quantity <= min_stock
	Limit        int
	Offset       int
}

// SupplyStats agregados del catálogo para el dashboard.
type SupplyStats struct {
	TotalSupplies  int
	LowStockCount  int
	WarningCount   int
	TotalUnits     int64
	InventoryValue decimal.Decimal
}

// SupplyRepository define el puerto de persistencia para Supply (DIP).
// Los Get* devuelven (nil, nil) si el insumo no existe.
type SupplyRepository interface {
	Create(ctx context.Context, supply *entity.Supply) error
	GetByID(ctx context.Context, id string) (*entity.Supply, error)
	GetByCode(ctx context.Context, code string) (*entity.Supply, error)
	// GetForUpdate lee y bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Supply, error)
	// UpdateStock actualiza cantidad, costo y updated_at. Único camino para cambiar Quantity.
	UpdateStock(ctx context.Context, id string, quantity int, unitCost decimal.Decimal, updatedAt time.Time) error
	// Update modifica nombre, código, descripción y stock mínimo; nunca la cantidad.
	Update(ctx context.Context, supply *entity.Supply) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter SupplyFilter) ([]*entity.Supply, error)
	Count(ctx context.Context, query string) (int, error)
	Stats(ctx context.Context) (SupplyStats, error)
}
