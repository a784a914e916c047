package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// ErrTableNotAllowed: el nombre de tabla no está en la allow-list de respaldos.
	// Se clasifica como error de seguridad (HTTP 403), no de validación.
	ErrTableNotAllowed = errors.New("tabla no permitida")

	// ErrInvalidSnapshot: el documento de respaldo no tiene la forma esperada
	// (faltan metadata o data). La restauración falla antes de tocar la DB.
	ErrInvalidSnapshot = errors.New("documento de respaldo inválido")
)
