package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrInsufficientQuantity = errors.New("cantidad insuficiente")
	ErrRemoteUnavailable    = errors.New("almacén remoto no disponible")
	ErrStorage              = errors.New("fallo de almacenamiento local")
)
