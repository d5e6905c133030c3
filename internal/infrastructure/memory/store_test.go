package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-dental-api/internal/domain"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/repository"
	"github.com/jhoicas/Inventario-dental-api/internal/infrastructure/memory"
)

var t0 = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newSupply(id, name, code string, qty int) *entity.Supply {
	return &entity.Supply{
		ID: id, Name: name, Code: code, Quantity: qty, MinStock: 5,
		UnitCost: decimal.Zero, CreatedAt: t0, UpdatedAt: t0,
	}
}

func TestTx_RollbackDescartaCambios(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Supplies().Create(ctx, newSupply("s1", "Guantes", "GL-01", 10)))

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Supplies().UpdateStock(ctx, "s1", 3, decimal.Zero, t0))
	require.NoError(t, tx.Movements().Create(ctx, &entity.StockMovement{
		ID: "m1", SupplyID: "s1", Type: entity.MovementTypeOUT, Quantity: 7, CreatedAt: t0,
	}))
	require.NoError(t, tx.Rollback(ctx))

	s, err := store.Supplies().GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 10, s.Quantity, "rollback no debe tocar el stock confirmado")
	movs, err := store.Movements().ListBySupply(ctx, "s1", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestTx_CommitPublicaYRollbackPosteriorEsNoop(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Supplies().Create(ctx, newSupply("s1", "Guantes", "GL-01", 10)))

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Supplies().UpdateStock(ctx, "s1", 15, decimal.Zero, t0))
	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, tx.Rollback(ctx))

	s, err := store.Supplies().GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 15, s.Quantity)

	// El cupo de escritura quedó libre
	tx2, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx2.Rollback(ctx))
}

func TestBegin_RespetaCancelacionMientrasOtraTxEscribe(t *testing.T) {
	store := memory.NewStore()
	tx, err := store.Begin(context.Background())
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = store.Begin(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestSupplies_CodigoDuplicado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Supplies().Create(ctx, newSupply("s1", "Guantes", "GL-01", 0)))
	err := store.Supplies().Create(ctx, newSupply("s2", "Otros guantes", "GL-01", 0))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSupplies_ListBuscaSinDistinguirMayusculas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Supplies().Create(ctx, newSupply("s1", "Resina Compuesta", "RS-01", 0)))
	require.NoError(t, store.Supplies().Create(ctx, newSupply("s2", "Anestesia", "AN-01", 20)))
	require.NoError(t, store.Supplies().Create(ctx, newSupply("s3", "Algodón", "rs-02", 9)))

	list, err := store.Supplies().List(ctx, repository.SupplyFilter{Query: "RS"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Algodón", list[0].Name, "orden por nombre ascendente")
	assert.Equal(t, "Resina Compuesta", list[1].Name)

	n, err := store.Supplies().Count(ctx, "rs")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	low, err := store.Supplies().List(ctx, repository.SupplyFilter{LowStockOnly: true})
	require.NoError(t, err)
	assert.Len(t, low, 1, "solo quantity <= minStock")

	paged, err := store.Supplies().List(ctx, repository.SupplyFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "Anestesia", paged[0].Name)
}

func TestSupplies_DeleteBorraMovimientosEnCascada(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Supplies().Create(ctx, newSupply("s1", "Guantes", "GL-01", 0)))
	require.NoError(t, store.Movements().Create(ctx, &entity.StockMovement{
		ID: "m1", SupplyID: "s1", Type: entity.MovementTypeIN, Quantity: 4, CreatedAt: t0,
	}))

	require.NoError(t, store.Supplies().Delete(ctx, "s1"))
	movs, err := store.Movements().ListBySupply(ctx, "s1", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
	assert.ErrorIs(t, store.Supplies().Delete(ctx, "s1"), domain.ErrSupplyNotFound)
}

func TestMovements_OrdenRecienteYDesempatePorInsercion(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Supplies().Create(ctx, newSupply("s1", "Guantes", "GL-01", 0)))
	for _, m := range []*entity.StockMovement{
		{ID: "a", SupplyID: "s1", Type: entity.MovementTypeIN, Quantity: 1, CreatedAt: t0},
		{ID: "b", SupplyID: "s1", Type: entity.MovementTypeIN, Quantity: 2, CreatedAt: t0.Add(time.Minute)},
		{ID: "c", SupplyID: "s1", Type: entity.MovementTypeIN, Quantity: 3, CreatedAt: t0.Add(time.Minute)},
	} {
		require.NoError(t, store.Movements().Create(ctx, m))
	}

	movs, err := store.Movements().ListBySupply(ctx, "s1", 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{movs[0].ID, movs[1].ID, movs[2].ID})

	firstTwo, err := store.Movements().ListBySupply(ctx, "s1", 2, 0)
	require.NoError(t, err)
	assert.Len(t, firstTwo, 2)
	rest, err := store.Movements().ListBySupply(ctx, "s1", 0, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "a", rest[0].ID)
}

func TestMovements_RechazaInsumoInexistente(t *testing.T) {
	store := memory.NewStore()
	err := store.Movements().Create(context.Background(), &entity.StockMovement{
		ID: "m1", SupplyID: "nope", Type: entity.MovementTypeIN, Quantity: 1, CreatedAt: t0,
	})
	assert.Error(t, err)
}

func TestStats_Agregados(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	a := newSupply("s1", "Guantes", "GL-01", 4) // LOW (min 5)
	b := newSupply("s2", "Resina", "RS-01", 7)  // WARNING (<= 7.5)
	b.UnitCost = decimal.RequireFromString("2.5")
	c := newSupply("s3", "Gasas", "GS-01", 100) // OK
	c.UnitCost = decimal.NewFromInt(1)
	for _, s := range []*entity.Supply{a, b, c} {
		require.NoError(t, store.Supplies().Create(ctx, s))
	}

	st, err := store.Supplies().Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalSupplies)
	assert.Equal(t, 1, st.LowStockCount)
	assert.Equal(t, 1, st.WarningCount)
	assert.Equal(t, int64(111), st.TotalUnits)
	assert.True(t, decimal.RequireFromString("117.5").Equal(st.InventoryValue), "got %s", st.InventoryValue)
}

func TestFailNext_SimulaCaida(t *testing.T) {
	store := memory.NewStore()
	boom := errors.New("conexión perdida")
	store.FailNext = func(op string) error {
		if op == "ping" {
			return boom
		}
		return nil
	}
	assert.ErrorIs(t, store.Ping(context.Background()), boom)
}
