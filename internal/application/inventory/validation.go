package inventory

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-dental-api/internal/domain"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-dental-api/internal/domain/inventory"
)

// MaxReasonLength longitud máxima (en caracteres) del motivo de un movimiento.
const MaxReasonLength = 500

// ValidateMovementInput revisa la entrada antes de abrir la transacción.
// Devuelve *domain.ValidationError con el detalle por campo.
func ValidateMovementInput(in MovementInput) error {
	v := domain.NewValidationError()
	if strings.TrimSpace(in.SupplyID) == "" {
		v.Add("supplyId", "supplyId es requerido")
	}
	if !entity.IsValidMovementType(in.Type) {
		v.Add("type", "type debe ser 'IN' u 'OUT'")
	}
	switch {
	case in.Quantity <= 0:
		v.Add("quantity", "quantity debe ser un entero positivo")
	case in.Quantity > domaininv.MaxQuantity:
		v.Add("quantity", "quantity no puede superar 2147483647")
	}
	if utf8.RuneCountInString(in.Reason) > MaxReasonLength {
		v.Add("reason", "reason debe tener 500 caracteres o menos")
	}
	if in.UnitCost != nil {
		if in.Type == entity.MovementTypeOUT {
			v.Add("unitCost", "unitCost solo aplica a entradas (IN)")
		} else if in.UnitCost.LessThan(decimal.Zero) {
			v.Add("unitCost", "unitCost no puede ser negativo")
		}
	}
	return v.OrNil()
}

// ValidateListInput revisa los filtros del historial.
func ValidateListInput(in ListMovementsInput) error {
	v := domain.NewValidationError()
	if strings.TrimSpace(in.SupplyID) == "" {
		v.Add("supplyId", "supplyId es requerido")
	}
	if in.Limit != nil && *in.Limit < 1 {
		v.Add("limit", "limit debe ser mayor o igual a 1")
	}
	if in.Offset != nil && *in.Offset < 0 {
		v.Add("offset", "offset no puede ser negativo")
	}
	return v.OrNil()
}
