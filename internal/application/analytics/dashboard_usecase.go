// Package analytics contiene el resumen del inventario para el dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-dental-api/internal/application/dto"
	"github.com/jhoicas/Inventario-dental-api/internal/domain"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-dental-api/internal/domain/repository"
)

const dashboardLowStock = 5 // insumos en stock bajo que muestra el widget

// DashboardUseCase genera el resumen del inventario. Solo lectura.
type DashboardUseCase struct {
	supplies repository.SupplyRepository
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(supplies repository.SupplyRepository) *DashboardUseCase {
	return &DashboardUseCase{supplies: supplies, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Dos llamadas en paralelo:
//  1. Stats()                       → conteos, unidades y valor del inventario
//  2. List(LowStockOnly, top 5)     → widget de stock bajo
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type statsResult struct {
		stats repository.SupplyStats
		err   error
	}
	type lowResult struct {
		list []*entity.Supply
		err  error
	}

	statsCh := make(chan statsResult, 1)
	lowCh := make(chan lowResult, 1)

	go func() {
		st, err := uc.supplies.Stats(ctx)
		statsCh <- statsResult{st, err}
	}()
	go func() {
		list, err := uc.supplies.List(ctx, repository.SupplyFilter{LowStockOnly: true, Limit: dashboardLowStock})
		lowCh <- lowResult{list, err}
	}()

	stats := <-statsCh
	low := <-lowCh

	if stats.err != nil {
		return nil, domain.WrapStore("dashboard: estadísticas", stats.err)
	}
	if low.err != nil {
		return nil, domain.WrapStore("dashboard: stock bajo", low.err)
	}

	lowStock := make([]dto.SupplySummary, 0, len(low.list))
	for _, s := range low.list {
		lowStock = append(lowStock, dto.ToSupplySummary(s))
	}

	return &dto.DashboardSummaryDTO{
		TotalSupplies:  stats.stats.TotalSupplies,
		LowStockCount:  stats.stats.LowStockCount,
		WarningCount:   stats.stats.WarningCount,
		TotalUnits:     stats.stats.TotalUnits,
		InventoryValue: stats.stats.InventoryValue.Round(2),
		LowStock:       lowStock,
		DateLabel:      MonthLabel(uc.now()),
	}, nil
}

// MonthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func MonthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
