package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-dental-api/internal/application/dto"
)

// ApplyMovementFromRequest adapta el request HTTP al caso de uso ApplyMovement(ctx, MovementInput).
func (uc *LedgerUseCase) ApplyMovementFromRequest(ctx context.Context, in dto.CreateStockMovementRequest) (*dto.CreateStockMovementResponse, error) {
	input := MovementInput{
		SupplyID: in.SupplyID,
		Type:     in.Type,
		Quantity: in.Quantity,
		UnitCost: in.UnitCost,
	}
	if in.Reason != nil {
		input.Reason = *in.Reason
	}
	res, err := uc.ApplyMovement(ctx, input)
	if err != nil {
		return nil, err
	}
	return &dto.CreateStockMovementResponse{
		Movement: dto.ToStockMovementResponse(res.Movement),
		Supply:   dto.ToSupplySummary(res.Supply),
	}, nil
}
