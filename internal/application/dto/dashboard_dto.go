package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalSupplies int `json:"totalSupplies"`
	// LowStockCount insumos con quantity <= minStock.
	LowStockCount int `json:"lowStockCount"`
	// WarningCount insumos con minStock < quantity <= 1.5*minStock.
	WarningCount int   `json:"warningCount"`
	TotalUnits   int64 `json:"totalUnits"`
	// InventoryValue suma de quantity * unitCost.
	InventoryValue decimal.Decimal `json:"inventoryValue"`
	LowStock       []SupplySummary `json:"lowStock"`
	DateLabel      string          `json:"dateLabel"`
}
