package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/Inventario-dental-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-dental-api/pkg/config"
	"github.com/jhoicas/Inventario-dental-api/pkg/jwt"
)

// Emite un token para operar la API con JWT_SECRET configurado.
// Uso: go run ./cmd/token -user recepcion -role asistente
func main() {
	user := flag.String("user", "", "identificador del operador (sub)")
	role := flag.String("role", entity.RoleAsistente, "rol: admin | asistente")
	exp := flag.Int("exp", 0, "minutos de validez (0 = JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	if !cfg.JWT.Enabled() {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no está configurado")
		os.Exit(1)
	}
	if *user == "" || !entity.IsValidRole(*role) {
		flag.Usage()
		os.Exit(2)
	}
	minutes := cfg.JWT.Expiration
	if *exp > 0 {
		minutes = *exp
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, *user, *role, cfg.JWT.Issuer, minutes)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generar token:", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
