package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSessionRequest body para abrir una sesión de opname.
type CreateSessionRequest struct {
	WarehouseID int64  `json:"warehouse_id"`
	CreatedBy   string `json:"created_by"`
}

// SessionResponse representación de una sesión.
type SessionResponse struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	WarehouseID int64      `json:"warehouse_id"`
	Status      string     `json:"status"`
	CreatedBy   string     `json:"created_by"`
	ConfirmedBy string     `json:"confirmed_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
}

// ConfirmSessionRequest body para confirmar una sesión (acción del líder).
type ConfirmSessionRequest struct {
	ConfirmedBy string `json:"confirmed_by"`
}

// AddScanRequest body para registrar un escaneo dentro de una sesión.
type AddScanRequest struct {
	ProductKey   string          `json:"product_key"` // barcode o default_code
	ProductName  string          `json:"product_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	UomID        *int64          `json:"uom_id,omitempty"`
	LocationID   int64           `json:"location_id"`
	LocationName string          `json:"location_name,omitempty"`
	CreatedBy    string          `json:"created_by"`
}

// WarehouseResponse bodega (réplica de solo lectura del ERP).
type WarehouseResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}
