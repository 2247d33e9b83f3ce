package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un material en el patio. El estado codifica cómo se agotó el
// material (issued/shipped), no solo que la cantidad llegó a cero.
const (
	MaterialStatusInYard   = "in_yard"
	MaterialStatusIssued   = "issued"
	MaterialStatusShipped  = "shipped"
	MaterialStatusDepleted = "depleted"
)

// Material representa un lote físico en el patio, creado a partir de una
// recepción aceptada. Qty es la cantidad original e inmutable;
// CurrentQuantity solo se modifica vía las operaciones de inventario
// (nunca por edición directa de campos). Invariante: 0 <= CurrentQuantity <= Qty.
type Material struct {
	ID                string           `json:"id"`
	ReceivingRecordID string           `json:"receiving_record_id"`
	QRCodeID          string           `json:"qr_code_id"`
	MaterialType      string           `json:"material_type"`
	Size              string           `json:"size,omitempty"`
	Grade             string           `json:"grade,omitempty"`
	Qty               decimal.Decimal  `json:"qty"`
	CurrentQuantity   decimal.Decimal  `json:"current_quantity"`
	Weight            *decimal.Decimal `json:"weight,omitempty"`
	Spec              string           `json:"spec,omitempty"`
	LocationID        *string          `json:"location_id,omitempty"`
	Status            string           `json:"status"`
	CreatedAt         time.Time        `json:"created_at"`
}

// MaterialView es el modelo de lectura de un material con su código QR y
// ubicación resueltos (para listados y detalle).
type MaterialView struct {
	Material
	QRCodeValue  string `json:"qr_code_value,omitempty"`
	LocationZone string `json:"location_zone,omitempty"`
	LocationRow  string `json:"location_row,omitempty"`
	LocationRack string `json:"location_rack,omitempty"`
}
