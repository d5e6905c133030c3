package inventory

import (
	"fmt"
	"math"

	"github.com/jhoicas/Inventario-dental-api/internal/domain"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/entity"
)

// MaxQuantity tope de existencias y de magnitud de un movimiento (columnas INTEGER).
const MaxQuantity = math.MaxInt32

// NextQuantity calcula el stock resultante de aplicar un movimiento.
// Rechaza magnitudes no positivas y tipos desconocidos (ErrInvalidInput) y las salidas
// que dejarían el stock en negativo (ErrInsufficientStock). Llegar a cero está permitido.
// Una entrada que supere MaxQuantity también es ErrInvalidInput.
func NextQuantity(current int, movementType string, quantity int) (int, error) {
	if quantity <= 0 || quantity > MaxQuantity {
		return current, domain.ErrInvalidInput
	}
	switch movementType {
	case entity.MovementTypeIN:
		if quantity > MaxQuantity-current {
			return current, fmt.Errorf("%w: el stock resultante supera %d", domain.ErrInvalidInput, MaxQuantity)
		}
		return current + quantity, nil
	case entity.MovementTypeOUT:
		next := current - quantity
		if next < 0 {
			return current, domain.ErrInsufficientStock
		}
		return next, nil
	default:
		return current, domain.ErrInvalidInput
	}
}

// Replay recalcula el stock a partir de un stock inicial y una secuencia de movimientos.
// Devuelve ErrInsufficientStock si en algún punto el saldo quedaría negativo.
func Replay(initial int, movements []*entity.StockMovement) (int, error) {
	qty := initial
	for _, m := range movements {
		next, err := NextQuantity(qty, m.Type, m.Quantity)
		if err != nil {
			return qty, err
		}
		qty = next
	}
	return qty, nil
}
