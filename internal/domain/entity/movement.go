package entity

import "time"

// MaterialMovement es el registro de auditoría de un traslado de ubicación.
// Solo se inserta; nunca se actualiza ni se borra.
type MaterialMovement struct {
	ID             string    `json:"id"`
	MaterialID     string    `json:"material_id"`
	FromLocationID *string   `json:"from_location_id,omitempty"`
	ToLocationID   string    `json:"to_location_id"`
	MovedBy        string    `json:"moved_by"`
	Reason         string    `json:"reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
