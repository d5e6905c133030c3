package main

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-dental-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-dental-api/pkg/config"
	"github.com/jhoicas/Inventario-dental-api/pkg/logger"
)

// Aplica las migraciones embebidas pendientes sobre la base configurada.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Strs("aplicadas", applied).Msg("migraciones")
	}
	if len(applied) == 0 {
		log.Info().Msg("esquema al día, sin migraciones pendientes")
		return
	}
	log.Info().Strs("aplicadas", applied).Msg("migraciones aplicadas")
}
