package dto

import "github.com/shopspring/decimal"

// VerificationLineDTO línea de verificación conciliada: cantidad del sistema
// (ERP) contra escaneado + ajustes locales, con delta monetario por hpp.
type VerificationLineDTO struct {
	LineID          int64           `json:"line_id"`
	ProductKey      string          `json:"product_key"`
	ProductName     string          `json:"product_name"`
	LocationName    string          `json:"location_name,omitempty"`
	SystemQty       decimal.Decimal `json:"system_qty"`
	ScannedQty      decimal.Decimal `json:"scanned_qty"`
	VerificationQty decimal.Decimal `json:"verification_qty"`
	TotalQty        decimal.Decimal `json:"total_qty"`
	DiffQty         decimal.Decimal `json:"diff_qty"`
	Status          string          `json:"status"`
	Hpp             decimal.Decimal `json:"hpp"`
	HppDiff         decimal.Decimal `json:"hpp_diff"`
}

// UpdateTotalRequest body para registrar el total real de una línea.
// El verificador digita el total contado, no el delta; el delta lo calcula la app.
type UpdateTotalRequest struct {
	NewTotal decimal.Decimal `json:"new_total"`
	Note     string          `json:"note,omitempty"`
}

// UpdateTotalResponse resultado de la actualización de total.
// Adjusted es false cuando el total digitado coincide con el actual y no se
// registró ningún ajuste.
type UpdateTotalResponse struct {
	Adjusted bool                `json:"adjusted"`
	Delta    decimal.Decimal     `json:"delta"`
	Line     VerificationLineDTO `json:"line"`
}
