package entity

// Roles válidos en el token del operador.
const (
	RoleAdmin     = "admin"     // administra el catálogo de insumos
	RoleAsistente = "asistente" // registra entradas y salidas
)

// IsValidRole indica si r es un rol conocido.
func IsValidRole(r string) bool {
	return r == RoleAdmin || r == RoleAsistente
}
