package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-dental-api/internal/application/dto"
	"github.com/jhoicas/Inventario-dental-api/internal/application/inventory"
	"github.com/jhoicas/Inventario-dental-api/internal/domain"
	"github.com/jhoicas/Inventario-dental-api/pkg/logger"
)

// StockMovementHandler maneja los movimientos de stock (ledger) y su historial.
type StockMovementHandler struct {
	uc  *inventory.LedgerUseCase
	log *logger.Logger
}

// NewStockMovementHandler construye el handler.
func NewStockMovementHandler(uc *inventory.LedgerUseCase, log *logger.Logger) *StockMovementHandler {
	return &StockMovementHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar movimiento de stock
// @Description  Aplica una entrada (IN) o salida (OUT) de forma atómica. Una salida mayor al stock se rechaza.
// @Tags         stock-movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockMovementRequest  true  "supplyId, type (IN|OUT), quantity > 0, reason opcional, unitCost opcional (solo IN)"
// @Success      201   {object}  dto.CreateStockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/stock-movements [post]
func (h *StockMovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ApplyMovementFromRequest(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	// Sin JWT configurado no hay operador identificado.
	if userID := GetUserID(c); userID != "" {
		h.log.Info().
			Str("user_id", userID).
			Str("role", GetRole(c)).
			Str("supply_id", out.Supply.ID).
			Str("type", out.Movement.Type).
			Int("quantity", out.Movement.Quantity).
			Msg("movimiento registrado por operador")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Historial de movimientos de un insumo
// @Description  Ordenado del más reciente al más antiguo. Sin limit devuelve todos.
// @Tags         stock-movements
// @Produce      json
// @Param        supplyId  query  string  true   "ID del insumo"
// @Param        limit     query  int     false  "Máximo de movimientos (>= 1)"
// @Param        offset    query  int     false  "Movimientos a saltar (>= 0)"
// @Success      200  {object}  dto.StockMovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/stock-movements [get]
func (h *StockMovementHandler) List(c *fiber.Ctx) error {
	return h.list(c, c.Query("supplyId"))
}

// ListBySupply godoc
// @Summary      Historial de movimientos (por ruta)
// @Tags         stock-movements
// @Produce      json
// @Param        id      path   string  true   "ID del insumo"
// @Param        limit   query  int     false  "Máximo de movimientos (>= 1)"
// @Param        offset  query  int     false  "Movimientos a saltar (>= 0)"
// @Success      200  {object}  dto.StockMovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/supplies/{id}/movements [get]
func (h *StockMovementHandler) ListBySupply(c *fiber.Ctx) error {
	return h.list(c, c.Params("id"))
}

func (h *StockMovementHandler) list(c *fiber.Ctx, supplyID string) error {
	in := inventory.ListMovementsInput{SupplyID: strings.TrimSpace(supplyID)}
	v := domain.NewValidationError()
	in.Limit = optionalInt(c, "limit", v)
	in.Offset = optionalInt(c, "offset", v)
	if err := v.OrNil(); err != nil {
		return writeError(c, h.log, err)
	}

	list, err := h.uc.ListMovements(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToStockMovementList(list))
}

// optionalInt lee un entero opcional del query string; ausente o vacío = nil.
func optionalInt(c *fiber.Ctx, key string, v *domain.ValidationError) *int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		v.Add(key, key+" debe ser un número entero")
		return nil
	}
	return &n
}
