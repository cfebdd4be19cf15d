package uom

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/opname-api/internal/domain/entity"
)

// Convert convierte una cantidad de la unidad de origen a la unidad destino,
// ambas de la misma categoría. Si los ids coinciden la cantidad vuelve intacta.
//
// La conversión es directa entre las dos unidades (sin redondeo intermedio):
// primero a la unidad de referencia de la categoría y de ahí al destino.
// Convención direccional del ERP, a preservar tal cual:
//
//	cantidad_referencia = cantidad × factor    (reference, smaller o sin tipo)
//	cantidad_referencia = cantidad ÷ factor    (bigger)
//
// El resultado queda a precisión completa; el redondeo de presentación ocurre
// solo al formatear porcentajes, nunca aquí, para no acumular error de
// redondeo durante la suma.
func Convert(qty decimal.Decimal, from, to entity.Uom) decimal.Decimal {
	if from.SameAs(to) {
		return qty
	}
	return fromReference(toReference(qty, from), to)
}

func toReference(qty decimal.Decimal, u entity.Uom) decimal.Decimal {
	if u.Type == entity.UomTypeBigger {
		return qty.Div(u.Factor)
	}
	return qty.Mul(u.Factor)
}

func fromReference(qty decimal.Decimal, u entity.Uom) decimal.Decimal {
	if u.Type == entity.UomTypeBigger {
		return qty.Mul(u.Factor)
	}
	return qty.Div(u.Factor)
}
