package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-dental-api/internal/application/dto"
	"github.com/jhoicas/Inventario-dental-api/internal/domain"
	"github.com/jhoicas/Inventario-dental-api/pkg/logger"
)

// writeError traduce un error de los casos de uso a la respuesta HTTP según su categoría.
// Los 5xx nunca exponen la causa al cliente; se registra en el log.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		resp := dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"}
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			resp.Details = verr.Fields
		}
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	case domain.KindNotFound:
		if errors.Is(err, domain.ErrSupplyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SUPPLY_NOT_FOUND", Message: "insumo no encontrado"})
		}
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case domain.KindConflict:
		if errors.Is(err, domain.ErrInsufficientStock) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para la salida"})
		}
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un insumo con ese código"})
	case domain.KindUnauthorized:
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autorizado"})
	case domain.KindForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case domain.KindUnavailable:
		log.Warn().Err(err).Str("path", c.Path()).Msg("almacenamiento no disponible")
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "STORE_UNAVAILABLE", Message: "almacenamiento no disponible, intente de nuevo",
		})
	default:
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// ErrorHandler responde los errores que escapan de los handlers (rutas inexistentes, panics
// recuperados, cuerpos demasiado grandes) con el mismo formato que writeError.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := "HTTP_ERROR"
			switch fe.Code {
			case fiber.StatusNotFound:
				code = "ROUTE_NOT_FOUND"
			case fiber.StatusMethodNotAllowed:
				code = "METHOD_NOT_ALLOWED"
			case fiber.StatusRequestEntityTooLarge:
				code = "BODY_TOO_LARGE"
			}
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
		}
		return writeError(c, log, err)
	}
}
