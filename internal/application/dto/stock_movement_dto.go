package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockMovementRequest body para POST /api/stock-movements.
type CreateStockMovementRequest struct {
	SupplyID string           `json:"supplyId"`
	Type     string           `json:"type"`
	Quantity int              `json:"quantity"`
	Reason   *string          `json:"reason,omitempty"`
	UnitCost *decimal.Decimal `json:"unitCost,omitempty"`
}

// StockMovementResponse salida de un movimiento del ledger.
type StockMovementResponse struct {
	ID        string           `json:"id"`
	SupplyID  string           `json:"supplyId"`
	Type      string           `json:"type"`
	Quantity  int              `json:"quantity"`
	Reason    *string          `json:"reason"`
	UnitCost  *decimal.Decimal `json:"unitCost,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// CreateStockMovementResponse respuesta 201: movimiento creado y estado posterior del insumo.
type CreateStockMovementResponse struct {
	Movement StockMovementResponse `json:"movement"`
	Supply   SupplySummary         `json:"supply"`
}

// StockMovementListResponse historial de movimientos (más reciente primero).
type StockMovementListResponse struct {
	Movements []StockMovementResponse `json:"movements"`
}
