package opname_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/opname-api/internal/application/dto"
	appopname "github.com/jhoicas/opname-api/internal/application/opname"
	"github.com/jhoicas/opname-api/internal/domain"
	"github.com/jhoicas/opname-api/internal/domain/entity"
	"github.com/jhoicas/opname-api/internal/domain/repository"
	"github.com/jhoicas/opname-api/pkg/logger"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func catID(id int64) *int64 { return &id }
func uomID(id int64) *int64 { return &id }

var (
	pcs   = entity.Uom{ID: 1, Name: "PCS", Type: entity.UomTypeReference, CategoryID: catID(1), Factor: d("1")}
	dozen = entity.Uom{ID: 2, Name: "DOZEN", Type: entity.UomTypeSmaller, CategoryID: catID(1), Factor: d("12")}
	loose = entity.Uom{ID: 8, Name: "UNIT", Factor: d("1")} // sin categoría
)

// ── Fakes en memoria ──────────────────────────────────────────────────────────

type fakeScanRepo struct {
	scans []*entity.ScanRecord
}

func (f *fakeScanRepo) Create(context.Context, *entity.ScanRecord) error { return nil }
func (f *fakeScanRepo) ListBySession(context.Context, string) ([]*entity.ScanRecord, error) {
	return nil, nil
}
func (f *fakeScanRepo) ListConfirmed(_ context.Context, filter repository.ScanFilter) ([]*entity.ScanRecord, error) {
	var out []*entity.ScanRecord
	for _, s := range f.scans {
		if filter.WarehouseID != nil && s.WarehouseID != *filter.WarehouseID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

type fakeWarehouseRepo struct{}

func (f *fakeWarehouseRepo) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	return &entity.Warehouse{ID: id, Name: "Bodega Central"}, nil
}
func (f *fakeWarehouseRepo) List(context.Context) ([]*entity.Warehouse, error) {
	return []*entity.Warehouse{
		{ID: 1, Name: "Bodega Central"},
		{ID: 2, Name: "Bodega Norte"},
	}, nil
}

type fakeErp struct {
	uoms   []entity.Uom
	posted []appopname.ErpAdjustment
	docID  int64
}

func (f *fakeErp) FetchUoms(context.Context) ([]entity.Uom, error) { return f.uoms, nil }
func (f *fakeErp) PostInventoryAdjustments(_ context.Context, adjs []appopname.ErpAdjustment) (int64, error) {
	f.posted = adjs
	return f.docID, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func scan(id, key, name string, wh int64, qty string, uom *int64, age time.Duration) *entity.ScanRecord {
	return &entity.ScanRecord{
		ID:          id,
		SessionID:   "s1",
		SessionCode: "OPN-001",
		WarehouseID: wh,
		ProductKey:  key,
		ProductName: name,
		Quantity:    d(qty),
		UomID:       uom,
		CreatedAt:   time.Now().Add(-age),
	}
}

func newSummaryUC(scans []*entity.ScanRecord, erp *fakeErp) *appopname.SummaryUseCase {
	return appopname.NewSummaryUseCase(&fakeScanRepo{scans: scans}, &fakeWarehouseRepo{}, erp, testLogger())
}

// ── Tests ─────────────────────────────────────────────────────────────────────

// TestAggregate_EscenarioDozenPcs: 6 PCS (más reciente) + 3 DOZEN del mismo
// producto → destino PCS (primera elegible del conjunto), total 3×12 + 6 = 42.
func TestAggregate_EscenarioDozenPcs(t *testing.T) {
	scans := []*entity.ScanRecord{
		scan("sc1", "P-100", "Tornillo M4", 1, "6", uomID(pcs.ID), time.Minute),
		scan("sc2", "P-100", "Tornillo M4", 1, "3", uomID(dozen.ID), 2*time.Minute),
	}
	uc := newSummaryUC(scans, &fakeErp{uoms: []entity.Uom{pcs, dozen}})

	rows, warnings, err := uc.Aggregate(context.Background(), nil, "")

	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.True(t, row.Quantity.Equal(d("42")), "total convertido a PCS, fue %s", row.Quantity)
	assert.True(t, row.NeedsConversion)
	assert.Equal(t, "PCS", row.TargetUom)
	assert.Empty(t, row.OriginalUom)
	require.NotNil(t, row.UomID)
	assert.Equal(t, pcs.ID, *row.UomID)

	// Detalles más recientes primero, con cantidad original y convertida.
	require.Len(t, row.Data, 2)
	assert.Equal(t, "sc1", row.Data[0].ScanID)
	assert.True(t, row.Data[0].ConvertedQuantity.Equal(d("6")))
	assert.Equal(t, "sc2", row.Data[1].ScanID)
	assert.True(t, row.Data[1].Quantity.Equal(d("3")))
	assert.True(t, row.Data[1].ConvertedQuantity.Equal(d("36")))
}

// TestAggregate_UnidadUnicaSinConversion: un solo uom distinto → sin conversión,
// unidad original como unidad de reporte y cantidades intactas.
func TestAggregate_UnidadUnicaSinConversion(t *testing.T) {
	scans := []*entity.ScanRecord{
		scan("sc1", "P-200", "Caja arandelas", 1, "5", uomID(dozen.ID), time.Minute),
		scan("sc2", "P-200", "Caja arandelas", 1, "2.5", uomID(dozen.ID), 2*time.Minute),
	}
	uc := newSummaryUC(scans, &fakeErp{uoms: []entity.Uom{pcs, dozen}})

	rows, warnings, err := uc.Aggregate(context.Background(), nil, "")

	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.False(t, row.NeedsConversion)
	assert.Empty(t, row.TargetUom)
	assert.Equal(t, "DOZEN", row.OriginalUom)
	assert.True(t, row.Quantity.Equal(d("7.5")))
	for _, detail := range row.Data {
		assert.True(t, detail.ConvertedQuantity.Equal(detail.Quantity), "sin conversión el detalle queda intacto")
	}
}

// TestAggregate_Aditividad: con la misma unidad destino, el total es la suma de
// las conversiones de cada registro sin importar el orden de los posteriores.
func TestAggregate_Aditividad(t *testing.T) {
	base := []*entity.ScanRecord{
		scan("sc1", "P-100", "Tornillo M4", 1, "6", uomID(pcs.ID), time.Minute), // fija PCS como primera unidad
		scan("sc2", "P-100", "Tornillo M4", 1, "3", uomID(dozen.ID), 2*time.Minute),
		scan("sc3", "P-100", "Tornillo M4", 1, "1.5", uomID(dozen.ID), 3*time.Minute),
		scan("sc4", "P-100", "Tornillo M4", 1, "4", uomID(pcs.ID), 4*time.Minute),
	}
	permuted := []*entity.ScanRecord{base[0], base[3], base[2], base[1]}

	ucA := newSummaryUC(base, &fakeErp{uoms: []entity.Uom{pcs, dozen}})
	ucB := newSummaryUC(permuted, &fakeErp{uoms: []entity.Uom{pcs, dozen}})

	rowsA, _, errA := ucA.Aggregate(context.Background(), nil, "")
	rowsB, _, errB := ucB.Aggregate(context.Background(), nil, "")

	require.NoError(t, errA)
	require.NoError(t, errB)
	require.Len(t, rowsA, 1)
	require.Len(t, rowsB, 1)
	// 6 + 36 + 18 + 4 = 64 PCS
	assert.True(t, rowsA[0].Quantity.Equal(d("64")), "fue %s", rowsA[0].Quantity)
	assert.True(t, rowsA[0].Quantity.Equal(rowsB[0].Quantity))
}

// TestAggregate_IndeterminadoConAdvertencia: unidades mixtas sin categoría →
// cantidades sin convertir y advertencia visible, nunca degrade silencioso.
func TestAggregate_IndeterminadoConAdvertencia(t *testing.T) {
	scans := []*entity.ScanRecord{
		scan("sc1", "P-300", "Pegante industrial", 1, "2", uomID(loose.ID), time.Minute),
		scan("sc2", "P-300", "Pegante industrial", 1, "3", uomID(pcs.ID), 2*time.Minute),
	}
	uc := newSummaryUC(scans, &fakeErp{uoms: []entity.Uom{pcs, dozen, loose}})

	rows, warnings, err := uc.Aggregate(context.Background(), nil, "")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, warnings, 1)

	row := rows[0]
	assert.True(t, row.NeedsConversion)
	assert.Empty(t, row.TargetUom)
	assert.NotEmpty(t, row.ConversionWarning)
	assert.True(t, row.Quantity.Equal(d("5")), "suma cruda sin conversión, fue %s", row.Quantity)
}

// TestAggregate_OrdenAlfabeticoPorBodega: bodegas ascendentes y productos en
// orden alfabético por nombre dentro de cada bodega.
func TestAggregate_OrdenAlfabeticoPorBodega(t *testing.T) {
	scans := []*entity.ScanRecord{
		scan("sc1", "P-2", "Zuncho", 1, "1", uomID(pcs.ID), time.Minute),
		scan("sc2", "P-1", "Abrazadera", 1, "1", uomID(pcs.ID), 2*time.Minute),
		scan("sc3", "P-3", "Martillo", 2, "1", uomID(pcs.ID), 3*time.Minute),
		scan("sc4", "P-4", "alicate", 1, "1", uomID(pcs.ID), 4*time.Minute),
	}
	uc := newSummaryUC(scans, &fakeErp{uoms: []entity.Uom{pcs}})

	rows, _, err := uc.Aggregate(context.Background(), nil, "")

	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Abrazadera", rows[0].Name)
	assert.Equal(t, "alicate", rows[1].Name, "orden insensible a mayúsculas")
	assert.Equal(t, "Zuncho", rows[2].Name)
	assert.Equal(t, "Martillo", rows[3].Name, "bodega 2 después de bodega 1")
	assert.Equal(t, "Bodega Central", rows[0].WarehouseName)
	assert.Equal(t, "Bodega Norte", rows[3].WarehouseName)
}

// TestSummary_Paginacion: la agregación corre sobre el conjunto completo y la
// página se corta en memoria.
func TestSummary_Paginacion(t *testing.T) {
	scans := []*entity.ScanRecord{
		scan("sc1", "P-1", "Abrazadera", 1, "1", uomID(pcs.ID), time.Minute),
		scan("sc2", "P-2", "Broca", 1, "1", uomID(pcs.ID), 2*time.Minute),
		scan("sc3", "P-3", "Cincel", 1, "1", uomID(pcs.ID), 3*time.Minute),
	}
	uc := newSummaryUC(scans, &fakeErp{uoms: []entity.Uom{pcs}})

	resp, err := uc.Summary(context.Background(), nil, "", dto.PageRequest{Limit: 2, Offset: 2})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.Page.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Cincel", resp.Items[0].Name)
}

func TestSummary_OffsetFueraDeRango(t *testing.T) {
	scans := []*entity.ScanRecord{
		scan("sc1", "P-1", "Abrazadera", 1, "1", uomID(pcs.ID), time.Minute),
	}
	uc := newSummaryUC(scans, &fakeErp{uoms: []entity.Uom{pcs}})

	resp, err := uc.Summary(context.Background(), nil, "", dto.PageRequest{Limit: 20, Offset: 50})

	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 1, resp.Page.Total)
}

// TestAggregate_SharePct: participación por bodega sobre el total convertido,
// redondeada a un decimal.
func TestAggregate_SharePct(t *testing.T) {
	scans := []*entity.ScanRecord{
		scan("sc1", "P-1", "Abrazadera", 1, "30", uomID(pcs.ID), time.Minute),
		scan("sc2", "P-2", "Broca", 1, "10", uomID(pcs.ID), 2*time.Minute),
	}
	uc := newSummaryUC(scans, &fakeErp{uoms: []entity.Uom{pcs}})

	rows, _, err := uc.Aggregate(context.Background(), nil, "")

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].SharePct.Equal(d("75")), "fue %s", rows[0].SharePct)
	assert.True(t, rows[1].SharePct.Equal(d("25")), "fue %s", rows[1].SharePct)
}

// ── Post al ERP ───────────────────────────────────────────────────────────────

// TestPost_OmiteIndeterminados: las líneas con conversión indeterminada no se
// postean; van en Skipped para revisión.
func TestPost_OmiteIndeterminados(t *testing.T) {
	scans := []*entity.ScanRecord{
		scan("sc1", "P-100", "Tornillo M4", 1, "6", uomID(pcs.ID), time.Minute),
		scan("sc2", "P-100", "Tornillo M4", 1, "3", uomID(dozen.ID), 2*time.Minute),
		scan("sc3", "P-300", "Pegante industrial", 1, "2", uomID(loose.ID), 3*time.Minute),
		scan("sc4", "P-300", "Pegante industrial", 1, "3", uomID(pcs.ID), 4*time.Minute),
	}
	erp := &fakeErp{uoms: []entity.Uom{pcs, dozen, loose}, docID: 77}
	summary := newSummaryUC(scans, erp)
	uc := appopname.NewPostUseCase(summary, erp, testLogger())

	resp, err := uc.Post(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, int64(77), resp.ErpDocumentID)
	assert.Equal(t, 1, resp.PostedLines)
	require.Len(t, resp.Skipped, 1)
	assert.Contains(t, resp.Skipped[0], "Pegante industrial")

	require.Len(t, erp.posted, 1)
	line := erp.posted[0]
	assert.Equal(t, "P-100", line.ProductKey)
	assert.True(t, line.Quantity.Equal(d("42")))
	require.NotNil(t, line.UomID)
	assert.Equal(t, pcs.ID, *line.UomID)
}

func TestPost_SinEscaneos(t *testing.T) {
	erp := &fakeErp{uoms: []entity.Uom{pcs}}
	summary := newSummaryUC(nil, erp)
	uc := appopname.NewPostUseCase(summary, erp, testLogger())

	_, err := uc.Post(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
