package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-dental-api/internal/application/dto"
	"github.com/jhoicas/Inventario-dental-api/internal/application/report"
	"github.com/jhoicas/Inventario-dental-api/internal/application/usecase"
	"github.com/jhoicas/Inventario-dental-api/internal/domain"
	"github.com/jhoicas/Inventario-dental-api/pkg/logger"
)

// SupplyHandler maneja las peticiones HTTP del catálogo de insumos.
type SupplyHandler struct {
	uc     *usecase.SupplyUseCase
	report *report.ReportUseCase
	log    *logger.Logger
}

// NewSupplyHandler construye el handler.
func NewSupplyHandler(uc *usecase.SupplyUseCase, reportUC *report.ReportUseCase, log *logger.Logger) *SupplyHandler {
	return &SupplyHandler{uc: uc, report: reportUC, log: log}
}

// Create godoc
// @Summary      Crear insumo
// @Description  La cantidad inicial (si viene) se registra como movimiento IN "Stock inicial".
// @Tags         supplies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplyRequest  true  "Datos del insumo"
// @Success      201   {object}  dto.SupplyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/supplies [post]
func (h *SupplyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplyRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener insumo por ID
// @Tags         supplies
// @Produce      json
// @Param        id   path  string  true  "ID del insumo"
// @Success      200  {object}  dto.SupplyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supplies/{id} [get]
func (h *SupplyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByCode godoc
// @Summary      Obtener insumo por código
// @Tags         supplies
// @Produce      json
// @Param        code  path  string  true  "Código del insumo"
// @Success      200  {object}  dto.SupplyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supplies/code/{code} [get]
func (h *SupplyHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar insumo
// @Description  No modifica la cantidad; el stock solo cambia con movimientos.
// @Tags         supplies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del insumo"
// @Param        body  body  dto.UpdateSupplyRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.SupplyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/supplies/{id} [put]
func (h *SupplyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSupplyRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar insumo
// @Description  Borra también su historial de movimientos.
// @Tags         supplies
// @Security     Bearer
// @Param        id   path  string  true  "ID del insumo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supplies/{id} [delete]
func (h *SupplyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar insumos
// @Tags         supplies
// @Produce      json
// @Param        page   query  int  false  "Página (>= 1, default 1)"
// @Param        limit  query  int  false  "Tamaño de página (1-100, default 20)"
// @Success      200  {object}  dto.SupplyListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/supplies [get]
func (h *SupplyHandler) List(c *fiber.Ctx) error {
	page, err := pageRequest(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar insumos por nombre o código
// @Tags         supplies
// @Produce      json
// @Param        q      query  string  false  "Texto a buscar (máx. 100 caracteres)"
// @Param        page   query  int     false  "Página (>= 1, default 1)"
// @Param        limit  query  int     false  "Tamaño de página (1-100, default 20)"
// @Success      200  {object}  dto.SupplyListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/supplies/search [get]
func (h *SupplyHandler) Search(c *fiber.Ctx) error {
	page, err := pageRequest(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Search(c.UserContext(), c.Query("q"), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de existencias
// @Tags         supplies
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/supplies/report.pdf [get]
func (h *SupplyHandler) Report(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.report.GenerateStockReport(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// pageRequest lee page y limit; ausentes toman los valores por defecto.
// Valores no numéricos o fuera de rango son un error de validación.
func pageRequest(c *fiber.Ctx) (dto.PageRequest, error) {
	v := domain.NewValidationError()
	var p dto.PageRequest
	if page := optionalInt(c, "page", v); page != nil {
		if *page < 1 {
			v.Add("page", "page debe ser mayor o igual a 1")
		}
		p.Page = *page
	}
	if limit := optionalInt(c, "limit", v); limit != nil {
		if *limit < 1 || *limit > dto.MaxPageSize {
			v.Add("limit", "limit debe estar entre 1 y 100")
		}
		p.Limit = *limit
	}
	if err := v.OrNil(); err != nil {
		return dto.PageRequest{}, err
	}
	p.Normalize()
	return p, nil
}
