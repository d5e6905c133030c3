package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-dental-api/internal/application/dto"
	"github.com/jhoicas/Inventario-dental-api/internal/application/inventory"
	"github.com/jhoicas/Inventario-dental-api/internal/application/usecase"
	"github.com/jhoicas/Inventario-dental-api/internal/domain"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-dental-api/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-dental-api/pkg/logger"
)

func newSupplyUC(store *memory.Store) *usecase.SupplyUseCase {
	ledger := inventory.NewLedgerUseCase(store, inventory.Config{TxTimeout: time.Second}, logger.Nop())
	return usecase.NewSupplyUseCase(store, ledger, logger.Nop())
}

func strPtr(s string) *string { return &s }

func TestSupplyCreate_StockInicialQuedaEnElLedger(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := newSupplyUC(store)
	cost := decimal.RequireFromString("1200.50")

	resp, err := uc.Create(ctx, dto.CreateSupplyRequest{
		Name: "  Anestesia lidocaína ", Code: "AN-001", Quantity: 30, MinStock: 10, UnitCost: &cost,
	})
	require.NoError(t, err)
	assert.Equal(t, "Anestesia lidocaína", resp.Name)
	assert.Equal(t, 30, resp.Quantity)
	assert.Equal(t, entity.StockStatusOK, resp.StockStatus)
	assert.True(t, cost.Equal(resp.UnitCost))

	movs, err := store.Movements().ListBySupply(ctx, resp.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeIN, movs[0].Type)
	assert.Equal(t, 30, movs[0].Quantity)
	assert.Equal(t, usecase.InitialStockReason, movs[0].Reason)
}

func TestSupplyCreate_SinCantidadNoCreaMovimiento(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	resp, err := newSupplyUC(store).Create(ctx, dto.CreateSupplyRequest{Name: "Gasas", Code: "GS-01", MinStock: 3})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Quantity)
	assert.Equal(t, entity.StockStatusLow, resp.StockStatus)

	movs, err := store.Movements().ListBySupply(ctx, resp.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestSupplyCreate_CodigoDuplicado(t *testing.T) {
	ctx := context.Background()
	uc := newSupplyUC(memory.NewStore())
	_, err := uc.Create(ctx, dto.CreateSupplyRequest{Name: "Guantes", Code: "GL-01"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateSupplyRequest{Name: "Guantes nitrilo", Code: "GL-01", Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSupplyCreate_FalloDelLedgerRevierteElAlta(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.FailNext = func(op string) error {
		if op == "movements.create" {
			return errors.New("disco lleno")
		}
		return nil
	}

	_, err := newSupplyUC(store).Create(ctx, dto.CreateSupplyRequest{Name: "Resina", Code: "RS-01", Quantity: 4})
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)

	store.FailNext = nil
	s, err := store.Supplies().GetByCode(ctx, "RS-01")
	require.NoError(t, err)
	assert.Nil(t, s, "el insumo no debe quedar creado")
}

func TestSupplyCreate_Validacion(t *testing.T) {
	neg := decimal.NewFromInt(-2)
	cases := map[string]struct {
		in    dto.CreateSupplyRequest
		field string
	}{
		"sin nombre":           {dto.CreateSupplyRequest{Name: "  ", Code: "A"}, "name"},
		"nombre largo":         {dto.CreateSupplyRequest{Name: strings.Repeat("a", 201), Code: "A"}, "name"},
		"sin código":           {dto.CreateSupplyRequest{Name: "A"}, "code"},
		"código largo":         {dto.CreateSupplyRequest{Name: "A", Code: strings.Repeat("c", 51)}, "code"},
		"cantidad negativa":    {dto.CreateSupplyRequest{Name: "A", Code: "A", Quantity: -1}, "quantity"},
		"stock mínimo neg.":    {dto.CreateSupplyRequest{Name: "A", Code: "A", MinStock: -1}, "minStock"},
		"costo negativo":       {dto.CreateSupplyRequest{Name: "A", Code: "A", UnitCost: &neg}, "unitCost"},
		"descripción enorme":   {dto.CreateSupplyRequest{Name: "A", Code: "A", Description: strings.Repeat("d", 1001)}, "description"},
		"cantidad sobre int32": {dto.CreateSupplyRequest{Name: "A", Code: "A", Quantity: math.MaxInt32 + 1}, "quantity"},
		"mínimo sobre int32":   {dto.CreateSupplyRequest{Name: "A", Code: "A", MinStock: math.MaxInt}, "minStock"},
	}
	uc := newSupplyUC(memory.NewStore())
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tc.in)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "se esperaba ValidationError, got %v", err)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
}

func TestSupplyGet_NoEncontrado(t *testing.T) {
	uc := newSupplyUC(memory.NewStore())
	_, err := uc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrSupplyNotFound)
	_, err = uc.GetByCode(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrSupplyNotFound)
}

func TestSupplyUpdate_NoTocaLaCantidad(t *testing.T) {
	ctx := context.Background()
	uc := newSupplyUC(memory.NewStore())
	created, err := uc.Create(ctx, dto.CreateSupplyRequest{Name: "Guantes", Code: "GL-01", Quantity: 12})
	require.NoError(t, err)

	minStock := 20
	updated, err := uc.Update(ctx, created.ID, dto.UpdateSupplyRequest{
		Name: strPtr("Guantes látex M"), Description: strPtr("Caja x100"), MinStock: &minStock,
	})
	require.NoError(t, err)
	assert.Equal(t, "Guantes látex M", updated.Name)
	assert.Equal(t, "GL-01", updated.Code)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Caja x100", *updated.Description)
	assert.Equal(t, 12, updated.Quantity)
	assert.Equal(t, entity.StockStatusLow, updated.StockStatus)

	got, err := uc.GetByCode(ctx, "GL-01")
	require.NoError(t, err)
	assert.Equal(t, "Guantes látex M", got.Name)
}

func TestSupplyUpdate_Errores(t *testing.T) {
	ctx := context.Background()
	uc := newSupplyUC(memory.NewStore())
	a, err := uc.Create(ctx, dto.CreateSupplyRequest{Name: "A", Code: "A-1"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateSupplyRequest{Name: "B", Code: "B-1"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, "nope", dto.UpdateSupplyRequest{Name: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrSupplyNotFound)

	_, err = uc.Update(ctx, a.ID, dto.UpdateSupplyRequest{Code: strPtr("B-1")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Update(ctx, a.ID, dto.UpdateSupplyRequest{Name: strPtr("")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSupplyDelete(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := newSupplyUC(store)
	created, err := uc.Create(ctx, dto.CreateSupplyRequest{Name: "A", Code: "A-1", Quantity: 3})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, created.ID))
	movs, err := store.Movements().ListBySupply(ctx, created.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, movs, "los movimientos se borran en cascada")
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrSupplyNotFound)
}

func TestSupplyList_Paginacion(t *testing.T) {
	ctx := context.Background()
	uc := newSupplyUC(memory.NewStore())
	for i := 1; i <= 5; i++ {
		_, err := uc.Create(ctx, dto.CreateSupplyRequest{Name: fmt.Sprintf("Insumo %02d", i), Code: fmt.Sprintf("C-%02d", i)})
		require.NoError(t, err)
	}

	res, err := uc.List(ctx, dto.PageRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 3, res.TotalPages)
	require.Len(t, res.Supplies, 2)
	assert.Equal(t, "Insumo 03", res.Supplies[0].Name)

	res, err = uc.List(ctx, dto.PageRequest{Page: 0, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page, "page < 1 se normaliza a 1")
	assert.Len(t, res.Supplies, 5)
	assert.Equal(t, 1, res.TotalPages)
}

func TestSupplySearch(t *testing.T) {
	ctx := context.Background()
	uc := newSupplyUC(memory.NewStore())
	for _, in := range []dto.CreateSupplyRequest{
		{Name: "Resina compuesta A2", Code: "RES-A2"},
		{Name: "Guantes de nitrilo", Code: "GL-NIT"},
		{Name: "Cemento de ionómero", Code: "CEM-01"},
	} {
		_, err := uc.Create(ctx, in)
		require.NoError(t, err)
	}

	res, err := uc.Search(ctx, `  <"resina'> `, dto.PageRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "RES-A2", res.Supplies[0].Code)

	res, err = uc.Search(ctx, "gl-", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total, "también busca por código")

	res, err = uc.Search(ctx, "DE", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, "Cemento de ionómero", res.Supplies[0].Name)

	res, err = uc.Search(ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total, "búsqueda vacía lista todo")

	_, err = uc.Search(ctx, strings.Repeat("x", 101), dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSanitizeSearchQuery(t *testing.T) {
	assert.Equal(t, "script", usecase.SanitizeSearchQuery(` <script> `))
	assert.Equal(t, "Oreilly", usecase.SanitizeSearchQuery(`O'reilly`))
	assert.Equal(t, "", usecase.SanitizeSearchQuery(`"'<>`))
}
