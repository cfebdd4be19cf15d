package repository

import (
	"context"

	"github.com/jhoicas/opname-api/internal/domain/entity"
)

// ScanFilter filtros del listado de escaneos confirmados.
type ScanFilter struct {
	WarehouseID *int64 // nil = todas las bodegas
	Search      string // substring sobre product_key o product_name
}

// ScanRepository define el puerto de persistencia para ScanRecord (DIP).
// El listado devuelve siempre el conjunto filtrado completo, ordenado por
// created_at descendente: la agregación y la paginación ocurren en memoria.
type ScanRepository interface {
	Create(ctx context.Context, scan *entity.ScanRecord) error
	ListConfirmed(ctx context.Context, filter ScanFilter) ([]*entity.ScanRecord, error)
	ListBySession(ctx context.Context, sessionID string) ([]*entity.ScanRecord, error)
}
