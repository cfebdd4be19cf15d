package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/opname-api/internal/domain/entity"
	"github.com/jhoicas/opname-api/internal/domain/repository"
)

var _ repository.ScanRepository = (*ScanRepo)(nil)

// ScanRepo implementación de ScanRepository sobre PostgreSQL (usable con pool o tx).
type ScanRepo struct {
	q Querier
}

// NewScanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewScanRepository(q Querier) *ScanRepo {
	return &ScanRepo{q: q}
}

// Create persiste un escaneo.
func (r *ScanRepo) Create(ctx context.Context, scan *entity.ScanRecord) error {
	query := `
		INSERT INTO opname_scans
			(id, session_id, warehouse_id, product_key, product_name, quantity, uom_id, location_id, location_name, created_by, created_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		scan.ID, scan.SessionID, scan.WarehouseID,
		scan.ProductKey, scan.ProductName, scan.Quantity, scan.UomID,
		scan.LocationID, scan.LocationName, scan.CreatedBy, scan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert scan: %w", err)
	}
	return nil
}

// ListConfirmed lista los escaneos de sesiones confirmadas, más reciente
// primero. El orden importa: la selección de unidad objetivo toma la primera
// unidad distinta en este orden.
func (r *ScanRepo) ListConfirmed(ctx context.Context, filter repository.ScanFilter) ([]*entity.ScanRecord, error) {
	query := `
		SELECT sc.id, sc.session_id, s.code, sc.warehouse_id,
		       sc.product_key, sc.product_name, sc.quantity, sc.uom_id,
		       sc.location_id, sc.location_name, sc.created_by, sc.created_at
		FROM opname_scans sc
		JOIN opname_sessions s ON s.id = sc.session_id
		WHERE s.status = 'confirmed'
		  AND ($1::bigint IS NULL OR sc.warehouse_id = $1)
		  AND ($2 = '' OR sc.product_key ILIKE '%' || $2 || '%' OR sc.product_name ILIKE '%' || $2 || '%')
		ORDER BY sc.created_at DESC, sc.id DESC`
	rows, err := r.q.Query(ctx, query, filter.WarehouseID, filter.Search)
	if err != nil {
		return nil, fmt.Errorf("list confirmed scans: %w", err)
	}
	defer rows.Close()

	var out []*entity.ScanRecord
	for rows.Next() {
		var s entity.ScanRecord
		if err := rows.Scan(
			&s.ID, &s.SessionID, &s.SessionCode, &s.WarehouseID,
			&s.ProductKey, &s.ProductName, &s.Quantity, &s.UomID,
			&s.LocationID, &s.LocationName, &s.CreatedBy, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// ListBySession lista los escaneos de una sesión, más reciente primero.
func (r *ScanRepo) ListBySession(ctx context.Context, sessionID string) ([]*entity.ScanRecord, error) {
	query := `
		SELECT sc.id, sc.session_id, s.code, sc.warehouse_id,
		       sc.product_key, sc.product_name, sc.quantity, sc.uom_id,
		       sc.location_id, sc.location_name, sc.created_by, sc.created_at
		FROM opname_scans sc
		JOIN opname_sessions s ON s.id = sc.session_id
		WHERE sc.session_id = $1
		ORDER BY sc.created_at DESC, sc.id DESC`
	rows, err := r.q.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list session scans: %w", err)
	}
	defer rows.Close()

	var out []*entity.ScanRecord
	for rows.Next() {
		var s entity.ScanRecord
		if err := rows.Scan(
			&s.ID, &s.SessionID, &s.SessionCode, &s.WarehouseID,
			&s.ProductKey, &s.ProductName, &s.Quantity, &s.UomID,
			&s.LocationID, &s.LocationName, &s.CreatedBy, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
