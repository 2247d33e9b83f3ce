package entity

import "time"

// Tipos de entidad a la que puede apuntar un código QR.
const (
	EntityTypeItem     = "item"
	EntityTypePallet   = "pallet"
	EntityTypeShipment = "shipment"
)

// QRCode representa un código escaneable. EntityID queda nil hasta que el
// código se vincula a una recepción; CodeValue es único (first-writer-wins).
type QRCode struct {
	ID         string    `json:"id"`
	CodeValue  string    `json:"code_value"`
	EntityType string    `json:"entity_type"`
	EntityID   *string   `json:"entity_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
