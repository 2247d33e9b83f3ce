package entity

import "time"

// AuditEntry es una entrada del log de auditoría global. Se escribe como
// efecto secundario best-effort de cada mutación: un fallo al insertarla
// nunca revierte ni falla la operación principal.
type AuditEntry struct {
	ID         string         `json:"id"`
	UserID     string         `json:"user_id,omitempty"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
