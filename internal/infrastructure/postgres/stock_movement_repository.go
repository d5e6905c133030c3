package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-dental-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento. Los movimientos nunca se actualizan.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, supply_id, type, quantity, reason, unit_cost, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)`
	_, err := r.q.Exec(ctx, query, m.ID, m.SupplyID, m.Type, m.Quantity, m.Reason, m.UnitCost, m.CreatedAt)
	if err != nil {
		return wrapErr("create stock movement", err)
	}
	return nil
}

// ListBySupply lista los movimientos del insumo, el más reciente primero.
func (r *StockMovementRepo) ListBySupply(ctx context.Context, supplyID string, limit, offset int) ([]*entity.StockMovement, error) {
	if !validID(supplyID) {
		return []*entity.StockMovement{}, nil
	}
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, supply_id, type, quantity, COALESCE(reason, ''), unit_cost, created_at
		FROM stock_movements
		WHERE supply_id = $1
		ORDER BY created_at DESC, id DESC`)
	args := []any{supplyID}
	if limit > 0 {
		args = append(args, limit)
		fmt.Fprintf(&sb, ` LIMIT $%d`, len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		fmt.Fprintf(&sb, ` OFFSET $%d`, len(args))
	}

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, wrapErr("list stock movements", err)
	}
	defer rows.Close()

	out := make([]*entity.StockMovement, 0)
	for rows.Next() {
		var (
			m    entity.StockMovement
			cost decimal.NullDecimal
		)
		if err := rows.Scan(&m.ID, &m.SupplyID, &m.Type, &m.Quantity, &m.Reason, &cost, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		if cost.Valid {
			c := cost.Decimal
			m.UnitCost = &c
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list stock movements", err)
	}
	return out, nil
}
