// Package report genera el reporte PDF de existencias del catálogo.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-dental-api/internal/domain"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/repository"
)

// ReportUseCase arma los datos del reporte y delega el render al generador.
type ReportUseCase struct {
	supplies   repository.SupplyRepository
	generator  StockReportGenerator
	clinicName string
	now        func() time.Time
}

// NewReportUseCase construye el caso de uso inyectando sus dependencias.
func NewReportUseCase(supplies repository.SupplyRepository, generator StockReportGenerator, clinicName string) *ReportUseCase {
	return &ReportUseCase{supplies: supplies, generator: generator, clinicName: clinicName, now: time.Now}
}

// GenerateStockReport devuelve (pdfBytes, filename, nil); filename = inventario-YYYYMMDD.pdf.
func (uc *ReportUseCase) GenerateStockReport(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	list, err := uc.supplies.List(ctx, repository.SupplyFilter{})
	if err != nil {
		return nil, "", domain.WrapStore("report: listar insumos", err)
	}
	stats, err := uc.supplies.Stats(ctx)
	if err != nil {
		return nil, "", domain.WrapStore("report: estadísticas", err)
	}

	now := uc.now()
	pdfBytes, err = uc.generator.GenerateStockReport(ctx, StockReport{
		ClinicName:  uc.clinicName,
		GeneratedAt: now,
		Supplies:    list,
		Stats:       stats,
	})
	if err != nil {
		return nil, "", fmt.Errorf("report: generar PDF: %w", err)
	}
	return pdfBytes, ReportFilename(now), nil
}

// ReportFilename nombre del archivo descargado.
func ReportFilename(t time.Time) string {
	return "inventario-" + t.Format("20060102") + ".pdf"
}
