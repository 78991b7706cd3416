package domain

import "errors"

// Errores de dominio (sin dependencias externas). Cada uno corresponde a una
// categoría de fallo del motor de trazabilidad; el handler HTTP los mapea a
// status codes una sola vez.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrOwnershipMismatch  = errors.New("el recurso pertenece a otra empresa o instalación")
	ErrInvalidState       = errors.New("el estado del lote no permite la operación")
	ErrQuantityMismatch   = errors.New("las cantidades no cuadran")
	ErrIncompatibleBatch  = errors.New("lotes incompatibles para fusión")
)
