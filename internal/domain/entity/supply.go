package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de stock derivados de Quantity y MinStock (solo informativos).
const (
	StockStatusLow     = "LOW"
	StockStatusWarning = "WARNING"
	StockStatusOK      = "OK"
)

// Supply representa un insumo de la clínica (guantes, resinas, anestésicos...).
// Quantity solo cambia vía movimientos de stock; MinStock no se valida como restricción.
type Supply struct {
	ID          string
	Name        string
	Code        string // único
	Description string
	Quantity    int
	MinStock    int
	UnitCost    decimal.Decimal // costo promedio ponderado (inicia en 0)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLowStock indica si el insumo está en o por debajo del stock mínimo.
func (s *Supply) IsLowStock() bool {
	return s.Quantity <= s.MinStock
}

// StockStatus devuelve LOW, WARNING (hasta 1.5x el mínimo) u OK.
func (s *Supply) StockStatus() string {
	if s.IsLowStock() {
		return StockStatusLow
	}
	// quantity <= 1.5*minStock sin pasar por flotantes
	if 2*s.Quantity <= 3*s.MinStock {
		return StockStatusWarning
	}
	return StockStatusOK
}

// StockValue devuelve Quantity * UnitCost.
func (s *Supply) StockValue() decimal.Decimal {
	return s.UnitCost.Mul(decimal.NewFromInt(int64(s.Quantity)))
}
