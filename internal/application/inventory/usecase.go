package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-dental-api/internal/domain"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-dental-api/internal/domain/inventory"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/repository"
	"github.com/jhoicas/Inventario-dental-api/pkg/logger"
)

// Config límites de la transacción del ledger.
type Config struct {
	TxTimeout    time.Duration // tope de duración de cada llamada a ApplyMovement
	MaxRetries   int           // reintentos ante fallos transitorios (bloqueo, serialización)
	RetryBackoff time.Duration // espera lineal entre intentos: backoff * intento
}

// MovementInput entrada para aplicar un movimiento de stock.
type MovementInput struct {
	SupplyID string
	Type     string
	Quantity int
	Reason   string
	UnitCost *decimal.Decimal // opcional, solo en IN
}

// MovementResult resultado exitoso: movimiento insertado e insumo ya actualizado.
type MovementResult struct {
	Movement *entity.StockMovement
	Supply   *entity.Supply
}

// LedgerUseCase aplica movimientos IN/OUT de forma transaccional con bloqueo de fila
// (SELECT FOR UPDATE) y consulta el historial del ledger.
type LedgerUseCase struct {
	store repository.Store
	cfg   Config
	log   *logger.Logger
	now   func() time.Time
}

// NewLedgerUseCase construye el caso de uso con el almacén inyectado.
func NewLedgerUseCase(store repository.Store, cfg Config, log *logger.Logger) *LedgerUseCase {
	if cfg.TxTimeout <= 0 {
		cfg.TxTimeout = 5 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{store: store, cfg: cfg, log: log.Named("ledger"), now: time.Now}
}

// ApplyMovement valida la entrada, abre una transacción, bloquea el insumo, calcula el nuevo
// stock, actualiza el insumo e inserta el movimiento. Cualquier error deja la BD sin cambios.
//
// Errores: *domain.ValidationError, domain.ErrSupplyNotFound, domain.ErrInsufficientStock o
// domain.ErrStoreUnavailable (envolviendo la causa).
func (uc *LedgerUseCase) ApplyMovement(ctx context.Context, in MovementInput) (*MovementResult, error) {
	if err := ValidateMovementInput(in); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.TxTimeout)
	defer cancel()

	for attempt := 0; ; attempt++ {
		res, err := uc.applyOnce(ctx, in)
		if err == nil {
			uc.log.Debug().
				Str("supply_id", in.SupplyID).
				Str("type", in.Type).
				Int("quantity", in.Quantity).
				Int("new_quantity", res.Supply.Quantity).
				Msg("movimiento registrado")
			return res, nil
		}
		if !errors.Is(err, domain.ErrTransient) || attempt >= uc.cfg.MaxRetries {
			return nil, err
		}
		uc.log.Warn().Err(err).
			Str("supply_id", in.SupplyID).
			Int("attempt", attempt+1).
			Msg("conflicto transitorio, reintentando movimiento")
		if werr := sleepCtx(ctx, uc.cfg.RetryBackoff*time.Duration(attempt+1)); werr != nil {
			return nil, fmt.Errorf("esperar reintento: %w: %w", domain.ErrStoreUnavailable, werr)
		}
	}
}

// applyOnce ejecuta un intento completo: Begin, trabajo, Commit. El Rollback diferido
// cubre cualquier salida temprana (error, timeout o cancelación).
func (uc *LedgerUseCase) applyOnce(ctx context.Context, in MovementInput) (*MovementResult, error) {
	tx, err := uc.store.Begin(ctx)
	if err != nil {
		return nil, domain.WrapStore("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := uc.ApplyWithinTx(ctx, tx, in)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.WrapStore("commit transaction", err)
	}
	return res, nil
}

// ApplyWithinTx aplica el movimiento usando la transacción del llamador (no hace Commit).
// Lo usa también el alta de insumos para registrar el stock inicial.
func (uc *LedgerUseCase) ApplyWithinTx(ctx context.Context, tx repository.Tx, in MovementInput) (*MovementResult, error) {
	// Bloquea la fila del insumo para serializar movimientos concurrentes
	supply, err := tx.Supplies().GetForUpdate(ctx, in.SupplyID)
	if err != nil {
		return nil, domain.WrapStore("lock supply", err)
	}
	if supply == nil {
		return nil, domain.ErrSupplyNotFound
	}

	newQty, err := domaininv.NextQuantity(supply.Quantity, in.Type, in.Quantity)
	if err != nil {
		return nil, err
	}

	newCost := supply.UnitCost
	if in.Type == entity.MovementTypeIN && in.UnitCost != nil {
		newCost = domaininv.CostCalculator(supply.Quantity, supply.UnitCost, in.Quantity, *in.UnitCost)
	}

	// TIMESTAMPTZ guarda microsegundos; la respuesta debe coincidir con lo persistido.
	now := uc.now().UTC().Truncate(time.Microsecond)
	if err := tx.Supplies().UpdateStock(ctx, supply.ID, newQty, newCost, now); err != nil {
		return nil, domain.WrapStore("update supply stock", err)
	}
	supply.Quantity = newQty
	supply.UnitCost = newCost
	supply.UpdatedAt = now

	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		SupplyID:  supply.ID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		UnitCost:  in.UnitCost,
		CreatedAt: now,
	}
	if err := tx.Movements().Create(ctx, mov); err != nil {
		return nil, domain.WrapStore("insert stock movement", err)
	}
	return &MovementResult{Movement: mov, Supply: supply}, nil
}

// ListMovementsInput filtros del historial. Limit/Offset nil = sin paginar.
type ListMovementsInput struct {
	SupplyID string
	Limit    *int
	Offset   *int
}

// ListMovements devuelve los movimientos del insumo, el más reciente primero.
// No verifica que el insumo exista: un id desconocido devuelve una lista vacía.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, in ListMovementsInput) ([]*entity.StockMovement, error) {
	if err := ValidateListInput(in); err != nil {
		return nil, err
	}
	limit, offset := 0, 0
	if in.Limit != nil {
		limit = *in.Limit
	}
	if in.Offset != nil {
		offset = *in.Offset
	}
	list, err := uc.store.Movements().ListBySupply(ctx, in.SupplyID, limit, offset)
	if err != nil {
		return nil, domain.WrapStore("list stock movements", err)
	}
	return list, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
