package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/opname-api/internal/domain/entity"
	"github.com/jhoicas/opname-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo implementación del ledger de ajustes sobre PostgreSQL
// (usable con pool o tx).
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

// Create persiste un delta de verificación. El ledger es solo-inserción.
func (r *AdjustmentRepo) Create(ctx context.Context, adj *entity.VerificationAdjustment) error {
	query := `
		INSERT INTO verification_adjustments (id, line_id, delta, note, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		adj.ID, adj.LineID, adj.Delta, adj.Note, adj.CreatedBy, adj.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert verification adjustment: %w", err)
	}
	return nil
}

// ListByLine lista los ajustes de una línea en orden de registro.
func (r *AdjustmentRepo) ListByLine(ctx context.Context, lineID int64) ([]*entity.VerificationAdjustment, error) {
	query := `
		SELECT id, line_id, delta, note, created_by, created_at
		FROM verification_adjustments
		WHERE line_id = $1
		ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, lineID)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()

	var out []*entity.VerificationAdjustment
	for rows.Next() {
		var a entity.VerificationAdjustment
		if err := rows.Scan(&a.ID, &a.LineID, &a.Delta, &a.Note, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// SumForLine devuelve la suma de deltas de una línea (cero si no hay registros).
func (r *AdjustmentRepo) SumForLine(ctx context.Context, lineID int64) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(delta), 0)
		FROM verification_adjustments
		WHERE line_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, lineID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum adjustments: %w", err)
	}
	return sum, nil
}

// SumByLines devuelve la suma de deltas por línea para un lote de líneas.
// Las líneas sin registros no aparecen en el mapa (el caller asume cero).
func (r *AdjustmentRepo) SumByLines(ctx context.Context, lineIDs []int64) (map[int64]decimal.Decimal, error) {
	out := make(map[int64]decimal.Decimal, len(lineIDs))
	if len(lineIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT line_id, SUM(delta)
		FROM verification_adjustments
		WHERE line_id = ANY($1)
		GROUP BY line_id`
	rows, err := r.q.Query(ctx, query, lineIDs)
	if err != nil {
		return nil, fmt.Errorf("sum adjustments by lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var sum decimal.Decimal
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, fmt.Errorf("scan adjustment sum: %w", err)
		}
		out[id] = sum
	}
	return out, rows.Err()
}

// LockLine toma el bloqueo de fila de una línea. Asegura primero la fila de
// bloqueo (la línea vive en el ERP, no localmente) y luego hace SELECT FOR
// UPDATE; el bloqueo se libera al cerrar la transacción.
func (r *AdjustmentRepo) LockLine(ctx context.Context, lineID int64) error {
	ensure := `
		INSERT INTO verification_line_locks (line_id)
		VALUES ($1)
		ON CONFLICT (line_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, ensure, lineID); err != nil {
		return fmt.Errorf("ensure line lock row: %w", err)
	}

	lock := `
		SELECT line_id FROM verification_line_locks
		WHERE line_id = $1
		FOR UPDATE`
	var id int64
	if err := r.q.QueryRow(ctx, lock, lineID).Scan(&id); err != nil {
		return fmt.Errorf("lock line %d: %w", lineID, err)
	}
	return nil
}
