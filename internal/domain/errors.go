package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrSessionConfirmed = errors.New("la sesión ya fue confirmada")
	ErrSessionNotOpen   = errors.New("la sesión no está abierta")
	ErrErpUnavailable   = errors.New("el ERP no está disponible")
	ErrMissingTargetUom = errors.New("conversión sin unidad destino")
)
