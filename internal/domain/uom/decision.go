package uom

import (
	"fmt"

	"github.com/jhoicas/opname-api/internal/domain/entity"
)

// DecisionKind clasifica el resultado del selector de unidad destino.
type DecisionKind int

const (
	// DecisionNone: una sola unidad distinta; no hay nada que convertir.
	DecisionNone DecisionKind = iota
	// DecisionConvert: unidades mixtas con unidad destino válida.
	DecisionConvert
	// DecisionIndeterminate: unidades mixtas pero sin destino determinable
	// (sin categoría en el catálogo, o ninguna unidad "smaller"/"reference"
	// en el conjunto). Las cantidades se agregan sin convertir y la condición
	// se reporta como advertencia; nunca se degrada en silencio.
	DecisionIndeterminate
)

// Decision es el resultado del selector para las unidades observadas de un producto.
type Decision struct {
	Kind     DecisionKind
	Target   *entity.Uom // unidad de reporte; solo en DecisionConvert
	Original *entity.Uom // unidad única observada; solo en DecisionNone (nil si ningún escaneo traía unidad)
	Reason   string      // explicación legible; solo en DecisionIndeterminate
}

// NeedsConversion replica el flag del agregado: solo es true cuando hay
// unidades mixtas, con o sin destino válido.
func (d Decision) NeedsConversion() bool {
	return d.Kind != DecisionNone
}

// SelectTarget decide la unidad de reporte para el conjunto de unidades
// distintas observadas en los escaneos de un producto (dentro de una bodega):
//
//  1. Una sola unidad (deduplicando por id, no por identidad) → sin conversión.
//  2. Varias unidades y la primera pertenece a una categoría del catálogo →
//     la primera unidad del conjunto con tipo "smaller" o "reference" es el destino.
//  3. Varias unidades sin ninguna "smaller"/"reference", o primera unidad sin
//     categoría en el catálogo → indeterminado, con razón explícita.
//
// El orden del slice es el orden de primera aparición en los escaneos; la
// regla de "la primera unidad" depende de ese orden y debe preservarse.
func SelectTarget(catalog Catalog, units []entity.Uom) Decision {
	distinct := dedupeByID(units)

	switch len(distinct) {
	case 0:
		// Producto escaneado sin unidad en todos sus registros.
		return Decision{Kind: DecisionNone}
	case 1:
		u := distinct[0]
		return Decision{Kind: DecisionNone, Original: &u}
	}

	first := distinct[0]
	if catalog.Lookup(first) == nil {
		return Decision{
			Kind:   DecisionIndeterminate,
			Reason: fmt.Sprintf("la unidad %q no pertenece a ninguna categoría de conversión", first.Name),
		}
	}

	for _, u := range distinct {
		if u.Type == entity.UomTypeSmaller || u.Type == entity.UomTypeReference {
			target := u
			return Decision{Kind: DecisionConvert, Target: &target}
		}
	}

	// Brecha heredada del sistema original: categoría con unidades mixtas pero
	// ninguna marcada smaller/reference. Se reporta en vez de dejar el destino
	// indefinido y propagar NaN.
	return Decision{
		Kind:   DecisionIndeterminate,
		Reason: fmt.Sprintf("la categoría %d no tiene unidad smaller ni reference entre las escaneadas", *first.CategoryID),
	}
}

// dedupeByID conserva la primera aparición de cada id de unidad.
func dedupeByID(units []entity.Uom) []entity.Uom {
	seen := make(map[int64]struct{}, len(units))
	out := make([]entity.Uom, 0, len(units))
	for _, u := range units {
		if _, ok := seen[u.ID]; ok {
			continue
		}
		seen[u.ID] = struct{}{}
		out = append(out, u)
	}
	return out
}
