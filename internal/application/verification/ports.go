package verification

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/opname-api/internal/domain/repository"
)

// ErpLine línea de verificación reportada por el ERP: cantidad de sistema,
// cantidad escaneada (posteada en el opname) y costo unitario (hpp).
type ErpLine struct {
	ID           int64
	ProductKey   string
	ProductName  string
	WarehouseID  int64
	LocationName string
	SystemQty    decimal.Decimal
	ScannedQty   decimal.Decimal
	Hpp          decimal.Decimal
}

// ErpGateway puerto hacia el ERP para el flujo de verificación.
type ErpGateway interface {
	FetchVerificationLines(ctx context.Context, warehouseID int64) ([]ErpLine, error)
	FetchVerificationLine(ctx context.Context, lineID int64) (*ErpLine, error)
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el
// repositorio de ajustes atado a esa tx. Junto con AdjustmentRepository.LockLine
// garantiza que leer-total / calcular-delta / insertar-ajuste sea atómico
// frente a verificadores concurrentes sobre la misma línea.
type TxRunner interface {
	Run(ctx context.Context, fn func(adjRepo repository.AdjustmentRepository) error) error
}
