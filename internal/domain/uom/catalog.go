// Package uom implementa el motor de conversión de unidades de medida del
// opname: agrupación del catálogo por categoría, selección de unidad destino
// cuando un producto fue escaneado en unidades mixtas y conversión directa de
// cantidades. Todo es puro: sin efectos, sin estado compartido.
package uom

import "github.com/jhoicas/opname-api/internal/domain/entity"

// Category agrupa las unidades mutuamente convertibles de una categoría del ERP.
type Category struct {
	ID        int64
	Reference *entity.Uom  // unidad de referencia (factor 1), nil si el ERP no la reporta
	Smaller   []entity.Uom // unidades tipo "smaller"
	Units     []entity.Uom // todas las unidades de la categoría, en orden de entrada
}

// Catalog indexa las categorías por id. Las unidades sin categoría quedan
// fuera del catálogo: no son elegibles para conversión.
type Catalog map[int64]*Category

// BuildCatalog agrupa una lista plana de unidades por categoría.
// El orden de entrada es irrelevante salvo para el orden interno de Units.
func BuildCatalog(uoms []entity.Uom) Catalog {
	catalog := make(Catalog)
	for _, u := range uoms {
		if u.CategoryID == nil {
			continue // sin categoría: excluida de la conversión
		}
		cat, ok := catalog[*u.CategoryID]
		if !ok {
			cat = &Category{ID: *u.CategoryID}
			catalog[*u.CategoryID] = cat
		}
		unit := u
		cat.Units = append(cat.Units, unit)
		switch u.Type {
		case entity.UomTypeReference:
			if cat.Reference == nil {
				cat.Reference = &unit
			}
		case entity.UomTypeSmaller:
			cat.Smaller = append(cat.Smaller, unit)
		}
	}
	return catalog
}

// Lookup devuelve la categoría de una unidad, o nil si la unidad no tiene
// categoría o la categoría no está en el catálogo.
func (c Catalog) Lookup(u entity.Uom) *Category {
	if u.CategoryID == nil {
		return nil
	}
	return c[*u.CategoryID]
}
