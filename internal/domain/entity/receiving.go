package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Decisiones de recepción.
const (
	ReceivingStatusPending           = "pending"
	ReceivingStatusAccepted          = "accepted"
	ReceivingStatusPartiallyAccepted = "partially_accepted"
	ReceivingStatusRejected          = "rejected"
)

// Condición del material inspeccionado.
const (
	ConditionGood    = "good"
	ConditionDamaged = "damaged"
	ConditionMixed   = "mixed"
)

// Tipos de excepción en recepción y su resolución.
const (
	ExceptionWrongType  = "wrong_type"
	ExceptionWrongCount = "wrong_count"
	ExceptionDamage     = "damage"

	ResolutionHold           = "hold"
	ResolutionReturnToVendor = "return_to_vendor"
)

// Tipos de foto de inspección.
const (
	PhotoTypeDamage         = "damage"
	PhotoTypeGeneral        = "general"
	PhotoTypeDeliveryTicket = "delivery_ticket"
)

// ReceivingRecord representa una recepción de material: descripción del
// material, metadatos de la orden de compra, resultado de inspección y
// decisión. Si la decisión es accepted o partially_accepted se crea además
// un Material con CurrentQuantity = Qty.
type ReceivingRecord struct {
	ID                  string           `json:"id"`
	QRCodeID            string           `json:"qr_code_id"`
	Status              string           `json:"status"`
	MaterialType        string           `json:"material_type"`
	Size                string           `json:"size,omitempty"`
	Grade               string           `json:"grade,omitempty"`
	Qty                 decimal.Decimal  `json:"qty"`
	Weight              *decimal.Decimal `json:"weight,omitempty"`
	Description         string           `json:"description,omitempty"`
	Spec                string           `json:"spec,omitempty"`
	Vendor              string           `json:"vendor,omitempty"`
	PONumber            string           `json:"po_number,omitempty"`
	DeliveryTicket      string           `json:"delivery_ticket,omitempty"`
	Carrier             string           `json:"carrier,omitempty"`
	Condition           string           `json:"condition"`
	DamageNotes         string           `json:"damage_notes,omitempty"`
	InspectionPass      bool             `json:"inspection_pass"`
	HasException        bool             `json:"has_exception"`
	ExceptionType       *string          `json:"exception_type,omitempty"`
	ExceptionResolved   bool             `json:"exception_resolved"`
	ExceptionResolution *string          `json:"exception_resolution,omitempty"`
	LocationID          *string          `json:"location_id,omitempty"`
	CreatedBy           string           `json:"created_by"`
	CreatedAt           time.Time        `json:"created_at"`
}

// ExceptionView es el modelo de lectura de una excepción de recepción con
// la ubicación resuelta, para la bandeja de resolución en oficina.
type ExceptionView struct {
	ReceivingRecord
	LocationZone string `json:"location_zone,omitempty"`
	LocationRow  string `json:"location_row,omitempty"`
	LocationRack string `json:"location_rack,omitempty"`
}

// InspectionPhoto referencia una foto subida al almacenamiento de objetos.
type InspectionPhoto struct {
	ID                string    `json:"id"`
	ReceivingRecordID string    `json:"receiving_record_id"`
	StoragePath       string    `json:"storage_path"`
	PhotoType         string    `json:"photo_type"`
	CreatedAt         time.Time `json:"created_at"`
}
