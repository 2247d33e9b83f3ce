package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialIssue es el registro de auditoría de una entrega a obra.
// Solo se inserta; nunca se actualiza ni se borra.
type MaterialIssue struct {
	ID             string          `json:"id"`
	MaterialID     string          `json:"material_id"`
	JobNumber      string          `json:"job_number"`
	WorkOrder      string          `json:"work_order,omitempty"`
	QuantityIssued decimal.Decimal `json:"quantity_issued"`
	IssuedBy       string          `json:"issued_by"`
	CreatedAt      time.Time       `json:"created_at"`
}
