package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Inventario-dental-api/internal/application/analytics"
	"github.com/jhoicas/Inventario-dental-api/pkg/logger"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetSummary godoc
// @Summary      Resumen del inventario
// @Description  Total de insumos, stock bajo, en alerta, unidades y valor del inventario.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(summary)
}
