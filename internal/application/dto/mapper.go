package dto

import "github.com/jhoicas/Inventario-dental-api/internal/domain/entity"

// ToSupplyResponse convierte la entidad en su representación HTTP.
func ToSupplyResponse(s *entity.Supply) *SupplyResponse {
	if s == nil {
		return nil
	}
	return &SupplyResponse{
		ID:          s.ID,
		Name:        s.Name,
		Code:        s.Code,
		Description: optionalString(s.Description),
		Quantity:    s.Quantity,
		MinStock:    s.MinStock,
		UnitCost:    s.UnitCost,
		StockStatus: s.StockStatus(),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToSupplySummary vista reducida usada en la respuesta de un movimiento.
func ToSupplySummary(s *entity.Supply) SupplySummary {
	return SupplySummary{ID: s.ID, Name: s.Name, Code: s.Code, Quantity: s.Quantity}
}

// ToStockMovementResponse convierte un movimiento del ledger.
func ToStockMovementResponse(m *entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:        m.ID,
		SupplyID:  m.SupplyID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Reason:    optionalString(m.Reason),
		UnitCost:  m.UnitCost,
		CreatedAt: m.CreatedAt,
	}
}

// ToStockMovementList mantiene el orden recibido; nunca devuelve nil.
func ToStockMovementList(list []*entity.StockMovement) StockMovementListResponse {
	out := make([]StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToStockMovementResponse(m))
	}
	return StockMovementListResponse{Movements: out}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
