package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/opname-api/internal/domain"
	"github.com/jhoicas/opname-api/internal/domain/entity"
	"github.com/jhoicas/opname-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implementación de SessionRepository sobre PostgreSQL.
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// Create persiste una sesión nueva.
func (r *SessionRepo) Create(ctx context.Context, session *entity.OpnameSession) error {
	query := `
		INSERT INTO opname_sessions (id, code, warehouse_id, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		session.ID, session.Code, session.WarehouseID,
		session.Status, session.CreatedBy, session.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión. Devuelve nil sin error si no existe.
func (r *SessionRepo) GetByID(ctx context.Context, id string) (*entity.OpnameSession, error) {
	query := `
		SELECT id, code, warehouse_id, status, created_by, COALESCE(confirmed_by, ''), created_at, confirmed_at
		FROM opname_sessions WHERE id = $1`
	var s entity.OpnameSession
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Code, &s.WarehouseID, &s.Status,
		&s.CreatedBy, &s.ConfirmedBy, &s.CreatedAt, &s.ConfirmedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

// List lista sesiones, opcionalmente por bodega, más reciente primero.
func (r *SessionRepo) List(ctx context.Context, warehouseID *int64, limit, offset int) ([]*entity.OpnameSession, error) {
	query := `
		SELECT id, code, warehouse_id, status, created_by, COALESCE(confirmed_by, ''), created_at, confirmed_at
		FROM opname_sessions
		WHERE ($1::bigint IS NULL OR warehouse_id = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []*entity.OpnameSession
	for rows.Next() {
		var s entity.OpnameSession
		if err := rows.Scan(
			&s.ID, &s.Code, &s.WarehouseID, &s.Status,
			&s.CreatedBy, &s.ConfirmedBy, &s.CreatedAt, &s.ConfirmedAt,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// Update actualiza estado y datos de confirmación de una sesión.
func (r *SessionRepo) Update(ctx context.Context, session *entity.OpnameSession) error {
	query := `
		UPDATE opname_sessions
		SET status = $2, confirmed_by = NULLIF($3, ''), confirmed_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		session.ID, session.Status, session.ConfirmedBy, session.ConfirmedAt,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
