package entity

import "time"

// Location representa una ubicación física del patio (zona/fila/rack).
type Location struct {
	ID         string    `json:"id"`
	Zone       string    `json:"zone"`
	Row        string    `json:"row"`
	Rack       string    `json:"rack"`
	IsHoldArea bool      `json:"is_hold_area"`
	Capacity   *int      `json:"capacity,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
