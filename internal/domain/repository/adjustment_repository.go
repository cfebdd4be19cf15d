package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/opname-api/internal/domain/entity"
)

// AdjustmentRepository define el puerto de persistencia para el ledger de
// ajustes de verificación (DIP).
//
// LockLine toma un bloqueo de fila por línea (SELECT FOR UPDATE sobre la fila
// de bloqueo); dentro de una transacción serializa leer-total / calcular-delta /
// insertar-ajuste frente a verificadores concurrentes.
type AdjustmentRepository interface {
	Create(ctx context.Context, adj *entity.VerificationAdjustment) error
	ListByLine(ctx context.Context, lineID int64) ([]*entity.VerificationAdjustment, error)
	SumForLine(ctx context.Context, lineID int64) (decimal.Decimal, error)
	SumByLines(ctx context.Context, lineIDs []int64) (map[int64]decimal.Decimal, error)
	LockLine(ctx context.Context, lineID int64) error
}
