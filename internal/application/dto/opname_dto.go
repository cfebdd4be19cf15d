package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScanDetailDTO fila de detalle de un producto en el resumen no posteado.
// Lleva la cantidad original escaneada y la convertida a la unidad de reporte.
type ScanDetailDTO struct {
	ScanID            string          `json:"scan_id"`
	SessionCode       string          `json:"session_code,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
	UomName           string          `json:"uom_name,omitempty"`
	ConvertedQuantity decimal.Decimal `json:"converted_quantity"`
	LocationName      string          `json:"location_name,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// UnpostedProductDTO fila por producto del resumen no posteado (agregado por
// bodega y producto, con la cantidad total ya normalizada a la unidad de reporte).
type UnpostedProductDTO struct {
	Key               string          `json:"key"`
	Name              string          `json:"name"`
	WarehouseID       int64           `json:"warehouse_id"`
	WarehouseName     string          `json:"warehouse_name"`
	Quantity          decimal.Decimal `json:"quantity"`
	TargetUom         string          `json:"target_uom,omitempty"`   // solo cuando hubo conversión
	OriginalUom       string          `json:"original_uom,omitempty"` // unidad a mostrar cuando no hubo conversión
	UomID             *int64          `json:"uom_id,omitempty"`       // id de la unidad de reporte (para el payload al ERP)
	NeedsConversion   bool            `json:"needs_conversion"`
	ConversionWarning string          `json:"conversion_warning,omitempty"` // razón cuando el destino fue indeterminado
	SharePct          decimal.Decimal `json:"share_pct"`                    // participación dentro de la bodega, 1 decimal
	Data              []ScanDetailDTO `json:"data"`
}

// UnpostedSummaryResponse respuesta paginada del resumen no posteado.
type UnpostedSummaryResponse struct {
	Items    []UnpostedProductDTO `json:"items"`
	Warnings []string             `json:"warnings,omitempty"`
	Page     PageResponse         `json:"page"`
}

// PostAdjustmentsResponse resultado del post de ajustes al ERP.
type PostAdjustmentsResponse struct {
	ErpDocumentID int64    `json:"erp_document_id"`
	PostedLines   int      `json:"posted_lines"`
	Skipped       []string `json:"skipped,omitempty"` // productos omitidos por conversión indeterminada
}
