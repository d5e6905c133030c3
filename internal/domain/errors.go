package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrSupplyNotFound    = errors.New("insumo no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrStoreUnavailable  = errors.New("almacenamiento no disponible")
	// ErrTransient marca fallos de la BD que pueden reintentarse (bloqueos, serialización).
	ErrTransient = errors.New("fallo transitorio de almacenamiento")
)

// ValidationError detalla los campos inválidos de una entrada (campo -> mensaje).
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier *ValidationError.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError construye un error de validación vacío.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add registra un mensaje para el campo. Conserva el primer mensaje por campo.
func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// OrNil devuelve nil si no hay campos inválidos.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrInvalidInput.Error() + " (" + strings.Join(parts, "; ") + ")"
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ErrorKind clasifica un error en la categoría que decide cómo se reporta al cliente.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
	KindUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// KindOf devuelve la categoría de err. nil se considera KindInternal; el llamador
// solo debe clasificar errores no nulos.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrSupplyNotFound), errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInsufficientStock), errors.Is(err, ErrDuplicate):
		return KindConflict
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrStoreUnavailable), errors.Is(err, ErrTransient):
		return KindUnavailable
	default:
		return KindInternal
	}
}

// WrapStore etiqueta un fallo de infraestructura como ErrStoreUnavailable conservando la causa.
// Los errores que ya tienen categoría de dominio se devuelven sin cambios.
func WrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	if KindOf(err) != KindInternal && !errors.Is(err, ErrTransient) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
