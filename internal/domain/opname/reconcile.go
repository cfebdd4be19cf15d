// Package opname contiene el cálculo de conciliación de la verificación:
// combinar la cantidad escaneada reportada por el ERP con el ledger local de
// ajustes para obtener total, diferencia contra sistema y clasificación.
// Servicio de dominio puro: sin efectos ni estado.
package opname

import "github.com/shopspring/decimal"

// Status clasificación tri-estado de una línea verificada según el signo de la diferencia.
type Status string

const (
	StatusPositive Status = "Positive"
	StatusNegative Status = "Negative"
	StatusBalance  Status = "Balance"
)

// Reconciliation resultado del cálculo por línea.
// Invariante: DiffQty.IsZero() ⇔ Status == StatusBalance.
type Reconciliation struct {
	SystemQty       decimal.Decimal
	ScannedQty      decimal.Decimal
	VerificationQty decimal.Decimal
	TotalQty        decimal.Decimal // ScannedQty + VerificationQty
	DiffQty         decimal.Decimal // TotalQty − SystemQty
	Status          Status
	HppDiff         decimal.Decimal // DiffQty × hpp (costo unitario)
}

// Reconcile calcula total, diferencia, estado y delta monetario de una línea.
// hpp es el costo unitario reportado por el ERP; aritmética decimal directa,
// sin redondeo.
func Reconcile(systemQty, scannedQty, verificationQty, hpp decimal.Decimal) Reconciliation {
	total := scannedQty.Add(verificationQty)
	diff := total.Sub(systemQty)

	status := StatusBalance
	switch {
	case diff.GreaterThan(decimal.Zero):
		status = StatusPositive
	case diff.LessThan(decimal.Zero):
		status = StatusNegative
	}

	return Reconciliation{
		SystemQty:       systemQty,
		ScannedQty:      scannedQty,
		VerificationQty: verificationQty,
		TotalQty:        total,
		DiffQty:         diff,
		Status:          status,
		HppDiff:         diff.Mul(hpp),
	}
}

// AdjustmentFromTotal convierte un total real digitado por el verificador en el
// delta a registrar en el ledger: newTotal − currentTotal. Guardar el delta (y
// no el total) mantiene el ledger aditivo e idempotente ante reintentos:
// currentTotal + delta reproduce newTotal exacto.
func AdjustmentFromTotal(currentTotal, newTotal decimal.Decimal) decimal.Decimal {
	return newTotal.Sub(currentTotal)
}
