package report

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-dental-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/repository"
)

// StockReport datos que necesita el generador para el reporte de existencias.
type StockReport struct {
	ClinicName  string
	GeneratedAt time.Time
	Supplies    []*entity.Supply // ya ordenados por nombre
	Stats       repository.SupplyStats
}

// StockReportGenerator puerto para generar el PDF del reporte (implementado en infrastructure/pdf).
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, r StockReport) ([]byte, error)
}
