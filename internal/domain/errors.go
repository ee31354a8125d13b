package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// ErrRegisteredRoleMissing falla de configuración: el rol de sistema "Registered" no existe.
	// No se reintenta; sin ese rol no se puede dar de alta ningún cliente.
	ErrRegisteredRoleMissing = errors.New("no se pudo cargar el rol 'Registered'")

	// ErrSessionNotFound la sesión no existe o ya fue revocada.
	ErrSessionNotFound = errors.New("sesión no encontrada")
)
