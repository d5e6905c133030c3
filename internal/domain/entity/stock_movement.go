package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock. Conjunto cerrado.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// StockMovement es un registro inmutable del ledger de un insumo.
// Quantity siempre es positiva; el signo lo da Type.
type StockMovement struct {
	ID        string
	SupplyID  string
	Type      string
	Quantity  int
	Reason    string
	UnitCost  *decimal.Decimal // solo en entradas con costo informado
	CreatedAt time.Time
}

// IsValidMovementType indica si t es IN u OUT.
func IsValidMovementType(t string) bool {
	return t == MovementTypeIN || t == MovementTypeOUT
}

// Signed devuelve la cantidad con signo (+ entrada, - salida).
func (m *StockMovement) Signed() int {
	if m.Type == MovementTypeOUT {
		return -m.Quantity
	}
	return m.Quantity
}
