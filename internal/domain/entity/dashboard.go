package entity

import "github.com/shopspring/decimal"

// KPISummary indicadores agregados del patio para el tablero de oficina.
// Los umbrales de antigüedad (30 y 90 días) cuentan lotes in_yard según su
// fecha de recepción.
type KPISummary struct {
	TotalMaterials      int             `json:"total_materials"`
	TotalInYard         int             `json:"total_in_yard"`
	TotalQuantityInYard decimal.Decimal `json:"total_quantity_in_yard"`
	OpenExceptions      int             `json:"open_exceptions"`
	AgingOver30         int             `json:"aging_over_30"`
	AgingOver90         int             `json:"aging_over_90"`
}

// InventoryByType agregado de inventario in_yard por tipo de material.
type InventoryByType struct {
	MaterialType  string          `json:"material_type"`
	ItemCount     int             `json:"item_count"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}

// YardLocationOverview utilización de una ubicación del patio: cuántos
// lotes in_yard guarda y cuánta cantidad suman.
type YardLocationOverview struct {
	LocationID    string          `json:"location_id"`
	Zone          string          `json:"zone"`
	Row           string          `json:"row"`
	Rack          string          `json:"rack"`
	IsHoldArea    bool            `json:"is_hold_area"`
	Capacity      *int            `json:"capacity,omitempty"`
	ItemsStored   int             `json:"items_stored"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}
