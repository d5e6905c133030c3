package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSupplyRequest entrada para crear un insumo. Quantity es el stock inicial
// y se registra como un movimiento IN dentro de la misma transacción.
type CreateSupplyRequest struct {
	Name        string           `json:"name"`
	Code        string           `json:"code"`
	Description string           `json:"description"`
	Quantity    int              `json:"quantity"`
	MinStock    int              `json:"minStock"`
	UnitCost    *decimal.Decimal `json:"unitCost,omitempty"`
}

// UpdateSupplyRequest entrada para actualizar un insumo (sin cantidad ni costo).
type UpdateSupplyRequest struct {
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
	MinStock    *int    `json:"minStock"`
}

// SupplyResponse salida de un insumo.
type SupplyResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	Description *string         `json:"description"`
	Quantity    int             `json:"quantity"`
	MinStock    int             `json:"minStock"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	StockStatus string          `json:"stockStatus"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// SupplySummary vista reducida del insumo que acompaña a un movimiento creado.
type SupplySummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Quantity int    `json:"quantity"`
}

// SupplyListResponse lista paginada de insumos (listado y búsqueda).
type SupplyListResponse struct {
	Supplies   []SupplyResponse `json:"supplies"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
}
