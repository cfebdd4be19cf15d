package entity

import "time"

// Estados de una sesión de opname. Solo los escaneos de sesiones confirmadas
// entran en la agregación y en el post al ERP.
const (
	SessionStatusOpen      = "open"
	SessionStatusConfirmed = "confirmed"
	SessionStatusCancelled = "cancelled"
)

// OpnameSession agrupa los escaneos de una jornada de conteo físico.
// La confirma un líder de bodega; hasta entonces sus escaneos no cuentan.
type OpnameSession struct {
	ID          string
	Code        string // consecutivo legible, ej. OPN-20240131-001
	WarehouseID int64
	Status      string
	CreatedBy   string
	ConfirmedBy string
	CreatedAt   time.Time
	ConfirmedAt *time.Time
}
