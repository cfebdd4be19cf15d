package repository

import (
	"context"

	"github.com/jhoicas/opname-api/internal/domain/entity"
)

// SessionRepository define el puerto de persistencia para OpnameSession (DIP).
type SessionRepository interface {
	Create(ctx context.Context, session *entity.OpnameSession) error
	GetByID(ctx context.Context, id string) (*entity.OpnameSession, error)
	List(ctx context.Context, warehouseID *int64, limit, offset int) ([]*entity.OpnameSession, error)
	Update(ctx context.Context, session *entity.OpnameSession) error
}
