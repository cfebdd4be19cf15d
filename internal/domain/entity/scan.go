package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScanRecord es un registro de escaneo de barras dentro de una sesión de opname.
// Entrada de solo lectura para el motor de agregación; la cantidad está expresada
// en la unidad escaneada (UomID), que puede ser nil si el producto no tiene unidad.
type ScanRecord struct {
	ID           string
	SessionID    string
	SessionCode  string // denormalizado por el join con la sesión en el listado
	WarehouseID  int64
	ProductKey   string // barcode o default_code del producto en el ERP
	ProductName  string
	Quantity     decimal.Decimal
	UomID        *int64
	LocationID   int64
	LocationName string
	CreatedBy    string
	CreatedAt    time.Time
}
