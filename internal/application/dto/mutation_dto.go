package dto

import "github.com/shopspring/decimal"

// TransferRequest body para POST /api/materials/:id/transfer.
type TransferRequest struct {
	FromLocationID *string `json:"from_location_id,omitempty"`
	ToLocationID   string  `json:"to_location_id"`
	MovedBy        string  `json:"moved_by"`
	Reason         string  `json:"reason,omitempty"`
}

// IssueRequest body para POST /api/materials/:id/issue.
type IssueRequest struct {
	JobNumber string          `json:"job_number"`
	WorkOrder string          `json:"work_order,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	IssuedBy  string          `json:"issued_by"`
}

// ShipmentRequest body para POST /api/materials/:id/ship.
type ShipmentRequest struct {
	Destination    string          `json:"destination"`
	Carrier        string          `json:"carrier,omitempty"`
	TrackingNumber string          `json:"tracking_number,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	ShippedBy      string          `json:"shipped_by"`
}

// PhotoDTO una foto de inspección adjunta (base64).
type PhotoDTO struct {
	Data      string `json:"data"` // JPEG en base64
	PhotoType string `json:"photo_type"`
}

// ReceivingRequest body para POST /api/receiving.
type ReceivingRequest struct {
	QRCodeValue    string           `json:"qr_code_value"`
	Status         string           `json:"status"`
	MaterialType   string           `json:"material_type"`
	Size           string           `json:"size,omitempty"`
	Grade          string           `json:"grade,omitempty"`
	Qty            decimal.Decimal  `json:"qty"`
	Weight         *decimal.Decimal `json:"weight,omitempty"`
	Description    string           `json:"description,omitempty"`
	Spec           string           `json:"spec,omitempty"`
	Vendor         string           `json:"vendor,omitempty"`
	PONumber       string           `json:"po_number,omitempty"`
	DeliveryTicket string           `json:"delivery_ticket,omitempty"`
	Carrier        string           `json:"carrier,omitempty"`
	Condition      string           `json:"condition"`
	DamageNotes    string           `json:"damage_notes,omitempty"`
	InspectionPass bool             `json:"inspection_pass"`
	HasException   bool             `json:"has_exception"`
	ExceptionType  *string          `json:"exception_type,omitempty"`
	LocationID     *string          `json:"location_id,omitempty"`
	CreatedBy      string           `json:"created_by"`
	Photos         []PhotoDTO       `json:"photos,omitempty"`
}

// ResolveExceptionRequest body para POST /api/exceptions/:id/resolve.
type ResolveExceptionRequest struct {
	Resolution string `json:"resolution"`
	ResolvedBy string `json:"resolved_by"`
}

// MutationResponse resultado de una mutación despachada por la frontera UI.
type MutationResponse struct {
	Queued  bool   `json:"queued"`
	Message string `json:"message"`
}

// SyncStatusResponse estado del subsistema de sincronización.
type SyncStatusResponse struct {
	Online   bool `json:"online"`
	Draining bool `json:"draining"`
	Pending  int  `json:"pending"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
