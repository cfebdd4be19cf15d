package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// VerificationAdjustment es un delta manual registrado sobre una línea de
// verificación del ERP. El ledger es aditivo: nunca se guarda un total, solo
// la diferencia contra el total conocido al momento del registro.
type VerificationAdjustment struct {
	ID        string
	LineID    int64 // id de la línea de inventario en el ERP
	Delta     decimal.Decimal
	Note      string
	CreatedBy string
	CreatedAt time.Time
}
