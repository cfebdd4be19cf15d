package opname

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/opname-api/internal/application/dto"
	"github.com/jhoicas/opname-api/internal/domain/entity"
)

// ErpAdjustment línea del payload de ajuste de inventario hacia el ERP.
// La cantidad va ya normalizada a la unidad de reporte (UomID).
type ErpAdjustment struct {
	ProductKey  string
	ProductName string
	WarehouseID int64
	Quantity    decimal.Decimal
	UomID       *int64
}

// ErpGateway puerto hacia el ERP (Odoo) para el flujo de opname.
// El catálogo de unidades es dato de referencia del ERP; el post crea el
// documento de ajuste de inventario y devuelve su id.
type ErpGateway interface {
	FetchUoms(ctx context.Context) ([]entity.Uom, error)
	PostInventoryAdjustments(ctx context.Context, adjustments []ErpAdjustment) (int64, error)
}

// SummaryPDFGenerator genera el reporte PDF del resumen no posteado.
type SummaryPDFGenerator interface {
	GenerateSummaryPDF(ctx context.Context, warehouseName string, generatedAt time.Time, rows []dto.UnpostedProductDTO) ([]byte, error)
}
