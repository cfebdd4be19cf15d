package entity

import "time"

// Warehouse es una bodega replicada desde el ERP (solo lectura para esta app).
type Warehouse struct {
	ID        int64
	Name      string
	Code      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
