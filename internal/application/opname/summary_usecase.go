package opname

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/opname-api/internal/application/dto"
	"github.com/jhoicas/opname-api/internal/domain"
	"github.com/jhoicas/opname-api/internal/domain/entity"
	"github.com/jhoicas/opname-api/internal/domain/repository"
	"github.com/jhoicas/opname-api/internal/domain/uom"
	"github.com/jhoicas/opname-api/pkg/logger"
)

// SummaryUseCase consolida los escaneos confirmados en el resumen no posteado:
// agrupa por (bodega, producto), decide la unidad de reporte cuando hay
// unidades mixtas, convierte cada registro y acumula. La agregación es en dos
// pasadas porque la unidad destino no se conoce hasta haber visto todas las
// unidades de un producto.
type SummaryUseCase struct {
	scanRepo      repository.ScanRepository
	warehouseRepo repository.WarehouseRepository
	erp           ErpGateway
	log           *logger.Logger
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(
	scanRepo repository.ScanRepository,
	warehouseRepo repository.WarehouseRepository,
	erp ErpGateway,
	log *logger.Logger,
) *SummaryUseCase {
	return &SummaryUseCase{
		scanRepo:      scanRepo,
		warehouseRepo: warehouseRepo,
		erp:           erp,
		log:           log,
	}
}

// aggregateKey clave compuesta tipada del agregado por producto. Struct en vez
// de concatenación de strings: evita colisiones por elección de delimitador.
type aggregateKey struct {
	warehouseID int64
	productKey  string
}

// productAggregate acumulador transitorio por clave; se descarta al responder.
type productAggregate struct {
	name     string
	quantity decimal.Decimal
	details  []dto.ScanDetailDTO
}

// Summary devuelve el resumen no posteado paginado. La agregación se calcula
// siempre sobre el conjunto filtrado completo y la página se corta en memoria.
func (uc *SummaryUseCase) Summary(ctx context.Context, warehouseID *int64, search string, page dto.PageRequest) (*dto.UnpostedSummaryResponse, error) {
	page.DefaultPage()

	rows, warnings, err := uc.Aggregate(ctx, warehouseID, search)
	if err != nil {
		return nil, err
	}

	total := len(rows)
	start := page.Offset
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}

	return &dto.UnpostedSummaryResponse{
		Items:    rows[start:end],
		Warnings: warnings,
		Page:     dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Aggregate ejecuta el pipeline completo sin paginar. También lo consumen el
// post al ERP y el reporte PDF.
func (uc *SummaryUseCase) Aggregate(ctx context.Context, warehouseID *int64, search string) ([]dto.UnpostedProductDTO, []string, error) {
	scans, err := uc.scanRepo.ListConfirmed(ctx, repository.ScanFilter{WarehouseID: warehouseID, Search: search})
	if err != nil {
		return nil, nil, err
	}
	if len(scans) == 0 {
		return []dto.UnpostedProductDTO{}, nil, nil
	}

	uoms, err := uc.erp.FetchUoms(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("catálogo de unidades: %w", domain.ErrErpUnavailable)
	}
	uomByID := make(map[int64]entity.Uom, len(uoms))
	for _, u := range uoms {
		uomByID[u.ID] = u
	}
	catalog := uom.BuildCatalog(uoms)

	// Pasada 1: conjunto de unidades distintas por clave, en orden de aparición.
	order := make([]aggregateKey, 0)
	unitsByKey := make(map[aggregateKey][]entity.Uom)
	for _, s := range scans {
		k := aggregateKey{warehouseID: s.WarehouseID, productKey: s.ProductKey}
		if _, ok := unitsByKey[k]; !ok {
			order = append(order, k)
			unitsByKey[k] = nil
		}
		if s.UomID == nil {
			continue
		}
		if u, ok := uomByID[*s.UomID]; ok {
			unitsByKey[k] = append(unitsByKey[k], u)
		}
	}

	decisions := make(map[aggregateKey]uom.Decision, len(unitsByKey))
	for k, units := range unitsByKey {
		decisions[k] = uom.SelectTarget(catalog, units)
	}

	// Pasada 2: convertir cada registro según la decisión de la pasada 1 y
	// acumular. Los escaneos vienen del repo más recientes primero, así que
	// los detalles quedan en ese orden sin reordenar.
	aggs := make(map[aggregateKey]*productAggregate, len(order))
	for _, s := range scans {
		k := aggregateKey{warehouseID: s.WarehouseID, productKey: s.ProductKey}
		agg, ok := aggs[k]
		if !ok {
			agg = &productAggregate{name: s.ProductName}
			aggs[k] = agg
		}

		var from *entity.Uom
		if s.UomID != nil {
			if u, found := uomByID[*s.UomID]; found {
				from = &u
			}
		}

		dec := decisions[k]
		converted := s.Quantity
		// El conversor solo se invoca con destino válido; con decisión
		// indeterminada la cantidad pasa sin convertir.
		if dec.Kind == uom.DecisionConvert && dec.Target != nil && from != nil {
			converted = uom.Convert(s.Quantity, *from, *dec.Target)
		}
		agg.quantity = agg.quantity.Add(converted)

		uomName := ""
		if from != nil {
			uomName = from.Name
		}
		agg.details = append(agg.details, dto.ScanDetailDTO{
			ScanID:            s.ID,
			SessionCode:       s.SessionCode,
			Quantity:          s.Quantity,
			UomName:           uomName,
			ConvertedQuantity: converted,
			LocationName:      s.LocationName,
			CreatedAt:         s.CreatedAt,
		})
	}

	warehouseNames, err := uc.warehouseNames(ctx)
	if err != nil {
		return nil, nil, err
	}

	// Totales por bodega para la participación porcentual (solo presentación).
	whTotals := make(map[int64]decimal.Decimal)
	for _, k := range order {
		whTotals[k.warehouseID] = whTotals[k.warehouseID].Add(aggs[k].quantity)
	}

	hundred := decimal.NewFromInt(100)
	rows := make([]dto.UnpostedProductDTO, 0, len(order))
	var warnings []string
	for _, k := range order {
		agg := aggs[k]
		dec := decisions[k]

		row := dto.UnpostedProductDTO{
			Key:             k.productKey,
			Name:            agg.name,
			WarehouseID:     k.warehouseID,
			WarehouseName:   warehouseNames[k.warehouseID],
			Quantity:        agg.quantity,
			NeedsConversion: dec.NeedsConversion(),
			Data:            agg.details,
		}
		switch dec.Kind {
		case uom.DecisionConvert:
			row.TargetUom = dec.Target.Name
			row.UomID = &dec.Target.ID
		case uom.DecisionNone:
			if dec.Original != nil {
				row.OriginalUom = dec.Original.Name
				row.UomID = &dec.Original.ID
			}
		case uom.DecisionIndeterminate:
			row.ConversionWarning = dec.Reason
			warnings = append(warnings, fmt.Sprintf("%s (bodega %d): %s", agg.name, k.warehouseID, dec.Reason))
		}

		if total := whTotals[k.warehouseID]; !total.IsZero() {
			row.SharePct = agg.quantity.Div(total).Mul(hundred).Round(1)
		}
		rows = append(rows, row)
	}

	if len(warnings) > 0 {
		uc.log.Warn().Int("productos", len(warnings)).Msg("productos con conversión indeterminada en el resumen")
	}

	// Orden: bodega ascendente, producto alfabético por nombre (collation).
	cl := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].WarehouseID != rows[j].WarehouseID {
			return rows[i].WarehouseID < rows[j].WarehouseID
		}
		return cl.CompareString(rows[i].Name, rows[j].Name) < 0
	})

	return rows, warnings, nil
}

func (uc *SummaryUseCase) warehouseNames(ctx context.Context) (map[int64]string, error) {
	list, err := uc.warehouseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(list))
	for _, w := range list {
		names[w.ID] = w.Name
	}
	return names, nil
}
