package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentOut es el registro de auditoría de un despacho saliente.
// Solo se inserta; nunca se actualiza ni se borra.
type ShipmentOut struct {
	ID              string          `json:"id"`
	MaterialID      string          `json:"material_id"`
	Destination     string          `json:"destination"`
	Carrier         string          `json:"carrier,omitempty"`
	TrackingNumber  string          `json:"tracking_number,omitempty"`
	QuantityShipped decimal.Decimal `json:"quantity_shipped"`
	CreatedAt       time.Time       `json:"created_at"`
}
