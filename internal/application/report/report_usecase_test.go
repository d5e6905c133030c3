package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-dental-api/internal/application/report"
	"github.com/jhoicas/Inventario-dental-api/internal/domain"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-dental-api/internal/infrastructure/memory"
)

type captureGenerator struct {
	got report.StockReport
	err error
}

func (g *captureGenerator) GenerateStockReport(_ context.Context, r report.StockReport) ([]byte, error) {
	g.got = r
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-fake"), nil
}

func TestGenerateStockReport(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	for _, s := range []*entity.Supply{
		{ID: "2", Name: "Resina", Code: "RS", Quantity: 3, UnitCost: decimal.NewFromInt(2)},
		{ID: "1", Name: "Anestesia", Code: "AN", Quantity: 1, UnitCost: decimal.NewFromInt(10)},
	} {
		require.NoError(t, store.Supplies().Create(ctx, s))
	}
	gen := &captureGenerator{}

	out, filename, err := report.NewReportUseCase(store.Supplies(), gen, "Clínica").GenerateStockReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), out)
	assert.Regexp(t, `^inventario-\d{8}\.pdf$`, filename)
	require.Len(t, gen.got.Supplies, 2)
	assert.Equal(t, "Anestesia", gen.got.Supplies[0].Name)
	assert.Equal(t, int64(4), gen.got.Stats.TotalUnits)
	assert.Equal(t, "Clínica", gen.got.ClinicName)
}

func TestGenerateStockReport_Errores(t *testing.T) {
	store := memory.NewStore()
	gen := &captureGenerator{err: errors.New("fuente no encontrada")}
	_, _, err := report.NewReportUseCase(store.Supplies(), gen, "").GenerateStockReport(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))

	store.FailNext = func(string) error { return errors.New("sin conexión") }
	_, _, err = report.NewReportUseCase(store.Supplies(), &captureGenerator{}, "").GenerateStockReport(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestReportFilename(t *testing.T) {
	assert.Equal(t, "inventario-20260305.pdf", report.ReportFilename(time.Date(2026, 3, 5, 23, 0, 0, 0, time.UTC)))
}
