package repository

import (
	"context"

	"github.com/jhoicas/opname-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de lectura de bodegas (réplica local del ERP).
type WarehouseRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Warehouse, error)
	List(ctx context.Context) ([]*entity.Warehouse, error)
}
