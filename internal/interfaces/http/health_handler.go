package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-dental-api/pkg/logger"
)

// Pinger lo implementa el almacén (postgres o memoria).
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler expone el estado del proceso y de la base de datos.
type HealthHandler struct {
	db      Pinger
	service string
	timeout time.Duration
	log     *logger.Logger
}

// NewHealthHandler construye el handler.
func NewHealthHandler(db Pinger, service string, log *logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, service: service, timeout: 3 * time.Second, log: log}
}

// Live godoc
// @Summary      Estado del proceso
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "service": h.service})
}

// DB godoc
// @Summary      Conectividad con la base de datos
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /api/health/db [get]
func (h *HealthHandler) DB(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "no-store")

	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn().Err(err).Msg("health: base de datos no disponible")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "error",
			"database": "disconnected",
		})
	}
	return c.JSON(fiber.Map{
		"status":    "ok",
		"database":  "connected",
		"latencyMs": time.Since(start).Milliseconds(),
	})
}
