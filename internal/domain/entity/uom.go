package entity

import "github.com/shopspring/decimal"

// Tipos de unidad según el ERP. El tipo decide la dirección del factor de
// conversión respecto a la unidad de referencia de la categoría:
// cantidad_en_referencia = cantidad × factor, salvo para "bigger" que divide.
const (
	UomTypeReference = "reference"
	UomTypeSmaller   = "smaller"
	UomTypeBigger    = "bigger"
)

// Uom es una unidad de medida del catálogo del ERP (dato de referencia, inmutable,
// no se crea desde esta aplicación).
type Uom struct {
	ID         int64
	Name       string
	Type       string          // reference, smaller, bigger o vacío
	CategoryID *int64          // nil = sin categoría: no elegible para conversión
	Factor     decimal.Decimal // razón respecto a la unidad de referencia de la categoría
}

// SameAs compara unidades por identificador (no por identidad de objeto).
func (u Uom) SameAs(other Uom) bool {
	return u.ID == other.ID
}

// Convertible indica si la unidad pertenece a alguna categoría de conversión.
func (u Uom) Convertible() bool {
	return u.CategoryID != nil
}
