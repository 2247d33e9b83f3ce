package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de acción encolable sin conexión.
const (
	ActionKindReceiving = "receiving"
	ActionKindTransfer  = "transfer"
	ActionKindIssue     = "issue"
	ActionKindShipment  = "shipment"
)

// TransferPayload argumentos de un traslado de ubicación diferido.
type TransferPayload struct {
	MaterialID     string  `json:"material_id"`
	FromLocationID *string `json:"from_location_id,omitempty"`
	ToLocationID   string  `json:"to_location_id"`
	MovedBy        string  `json:"moved_by"`
	Reason         string  `json:"reason,omitempty"`
}

// IssuePayload argumentos de una entrega a obra diferida.
type IssuePayload struct {
	MaterialID string          `json:"material_id"`
	JobNumber  string          `json:"job_number"`
	WorkOrder  string          `json:"work_order,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
	IssuedBy   string          `json:"issued_by"`
}

// ShipmentPayload argumentos de un despacho saliente diferido.
type ShipmentPayload struct {
	MaterialID     string          `json:"material_id"`
	Destination    string          `json:"destination"`
	Carrier        string          `json:"carrier,omitempty"`
	TrackingNumber string          `json:"tracking_number,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	ShippedBy      string          `json:"shipped_by"`
}

// ReceivingPayload argumentos de una recepción diferida. Las fotos se
// omiten al encolar: la variante offline difiere la secuencia completa
// sin adjuntos.
type ReceivingPayload struct {
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
}

// QueuedAction es una acción pendiente en la cola offline: una unión
// etiquetada por Kind con exactamente un payload no-nil. Las entradas son
// inmutables una vez creadas y se eliminan solo cuando su replay contra el
// almacén remoto tiene éxito.
type QueuedAction struct {
	ID        string
	Kind      string
	CreatedAt time.Time

	Receiving *ReceivingPayload
	Transfer  *TransferPayload
	Issue     *IssuePayload
	Shipment  *ShipmentPayload
}

// envelope es la forma serializada de una acción encolada.
type envelope struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"payload"`
}

// MarshalJSON serializa la acción como sobre {id, kind, created_at, payload}.
func (a QueuedAction) MarshalJSON() ([]byte, error) {
	var payload any
	switch a.Kind {
	case ActionKindReceiving:
		payload = a.Receiving
	case ActionKindTransfer:
		payload = a.Transfer
	case ActionKindIssue:
		payload = a.Issue
	case ActionKindShipment:
		payload = a.Shipment
	default:
		return nil, fmt.Errorf("tipo de acción desconocido: %q", a.Kind)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{ID: a.ID, Kind: a.Kind, CreatedAt: a.CreatedAt, Payload: raw})
}

// UnmarshalJSON reconstruye la variante según kind; un kind desconocido es
// un error (no se deserializa a ciegas).
func (a *QueuedAction) UnmarshalJSON(data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	*a = QueuedAction{ID: env.ID, Kind: env.Kind, CreatedAt: env.CreatedAt}
	switch env.Kind {
	case ActionKindReceiving:
		a.Receiving = &ReceivingPayload{}
		return json.Unmarshal(env.Payload, a.Receiving)
	case ActionKindTransfer:
		a.Transfer = &TransferPayload{}
		return json.Unmarshal(env.Payload, a.Transfer)
	case ActionKindIssue:
		a.Issue = &IssuePayload{}
		return json.Unmarshal(env.Payload, a.Issue)
	case ActionKindShipment:
		a.Shipment = &ShipmentPayload{}
		return json.Unmarshal(env.Payload, a.Shipment)
	default:
		return fmt.Errorf("tipo de acción desconocido: %q", env.Kind)
	}
}
