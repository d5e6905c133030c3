package dto

// Límites de paginación del catálogo.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest paginación por número de página (1-based).
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Normalize acota Page >= 1 y Limit a 1..MaxPageSize (DefaultPageSize si es cero).
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
}

// Offset devuelve la cantidad de filas a saltar para la página.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages devuelve ceil(total/limit).
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// ErrorResponse cuerpo de error HTTP. Details lleva el detalle por campo en validaciones.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}
