package opname_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/opname-api/internal/domain/opname"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// TestReconcile_EscenarioNegativo reproduce el escenario de referencia:
// sistema 100, escaneado 95, ajustes previos +3 → total 98, diff -2, Negative.
func TestReconcile_EscenarioNegativo(t *testing.T) {
	r := opname.Reconcile(d("100"), d("95"), d("3"), decimal.Zero)

	assert.True(t, r.TotalQty.Equal(d("98")), "total = escaneado + ajustes")
	assert.True(t, r.DiffQty.Equal(d("-2")), "diff = total - sistema")
	assert.Equal(t, opname.StatusNegative, r.Status)
}

func TestReconcile_EstadoPorSigno(t *testing.T) {
	cases := []struct {
		name                      string
		system, scanned, verified string
		status                    opname.Status
	}{
		{"sobrante", "10", "12", "0", opname.StatusPositive},
		{"faltante", "10", "8", "0", opname.StatusNegative},
		{"cuadrado", "10", "8", "2", opname.StatusBalance},
		{"cuadrado exacto cero", "0", "0", "0", opname.StatusBalance},
		{"ajuste negativo", "10", "12", "-5", opname.StatusNegative},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := opname.Reconcile(d(tc.system), d(tc.scanned), d(tc.verified), decimal.Zero)
			assert.Equal(t, tc.status, r.Status)
			// Invariante: diff cero ⇔ Balance
			assert.Equal(t, r.DiffQty.IsZero(), r.Status == opname.StatusBalance)
			expected := d(tc.scanned).Add(d(tc.verified)).Sub(d(tc.system))
			assert.True(t, r.DiffQty.Equal(expected))
		})
	}
}

// TestReconcile_HppDiff verifica el delta monetario: diff × costo unitario.
func TestReconcile_HppDiff(t *testing.T) {
	r := opname.Reconcile(d("100"), d("95"), d("3"), d("1500.50"))
	assert.True(t, r.HppDiff.Equal(d("-3001.00")), "hpp_diff = -2 × 1500.50, fue %s", r.HppDiff)
}

func TestReconcile_CantidadesDecimales(t *testing.T) {
	r := opname.Reconcile(d("10.5"), d("10.25"), d("0.25"), decimal.Zero)
	assert.Equal(t, opname.StatusBalance, r.Status)
	assert.True(t, r.DiffQty.IsZero())
}

// TestAdjustmentFromTotal_RoundTrip: el delta registrado reproduce el total
// digitado al aplicarlo de vuelta (T0 + (T1 - T0) == T1, exacto).
func TestAdjustmentFromTotal_RoundTrip(t *testing.T) {
	current := d("95")
	newTotal := d("98")

	adj := opname.AdjustmentFromTotal(current, newTotal)

	assert.True(t, adj.Equal(d("3")), "ajuste = 98 - 95")
	assert.True(t, current.Add(adj).Equal(newTotal), "aplicar el delta reproduce el total digitado")
}

func TestAdjustmentFromTotal_SinCambioEsCero(t *testing.T) {
	adj := opname.AdjustmentFromTotal(d("95"), d("95"))
	assert.True(t, adj.IsZero(), "total igual al actual no genera ajuste")
}

func TestAdjustmentFromTotal_Negativo(t *testing.T) {
	adj := opname.AdjustmentFromTotal(d("98.75"), d("90.25"))
	assert.True(t, adj.Equal(d("-8.5")))
}
