package verification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/opname-api/internal/application/dto"
	"github.com/jhoicas/opname-api/internal/domain"
	"github.com/jhoicas/opname-api/internal/domain/entity"
	"github.com/jhoicas/opname-api/internal/domain/opname"
	"github.com/jhoicas/opname-api/internal/domain/repository"
	"github.com/jhoicas/opname-api/pkg/logger"
)

// UseCase concilia las líneas de verificación del ERP con el ledger local de
// ajustes y registra nuevos ajustes a partir del total real digitado.
type UseCase struct {
	erp      ErpGateway
	adjRepo  repository.AdjustmentRepository
	txRunner TxRunner
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(erp ErpGateway, adjRepo repository.AdjustmentRepository, txRunner TxRunner, log *logger.Logger) *UseCase {
	return &UseCase{erp: erp, adjRepo: adjRepo, txRunner: txRunner, log: log}
}

// List devuelve las líneas de una bodega conciliadas: total, diferencia,
// estado y delta monetario por línea.
func (uc *UseCase) List(ctx context.Context, warehouseID int64) ([]dto.VerificationLineDTO, error) {
	lines, err := uc.erp.FetchVerificationLines(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("líneas de verificación: %w", domain.ErrErpUnavailable)
	}
	if len(lines) == 0 {
		return []dto.VerificationLineDTO{}, nil
	}

	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ID)
	}
	sums, err := uc.adjRepo.SumByLines(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.VerificationLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, toLineDTO(l, opname.Reconcile(l.SystemQty, l.ScannedQty, sums[l.ID], l.Hpp)))
	}
	return out, nil
}

// UpdateTotal registra el total real digitado por el verificador como un delta
// en el ledger. Toda la secuencia leer-total/calcular-delta/insertar corre en
// una sola transacción con bloqueo de fila por línea, de modo que dos
// verificadores concurrentes sobre la misma línea se serializan.
// Si el total digitado coincide con el actual no se registra nada.
func (uc *UseCase) UpdateTotal(ctx context.Context, lineID int64, in dto.UpdateTotalRequest, updatedBy string) (*dto.UpdateTotalResponse, error) {
	line, err := uc.erp.FetchVerificationLine(ctx, lineID)
	if err != nil {
		return nil, fmt.Errorf("línea de verificación %d: %w", lineID, domain.ErrErpUnavailable)
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}

	var resp *dto.UpdateTotalResponse
	err = uc.txRunner.Run(ctx, func(adjRepo repository.AdjustmentRepository) error {
		if err := adjRepo.LockLine(ctx, lineID); err != nil {
			return err
		}
		sum, err := adjRepo.SumForLine(ctx, lineID)
		if err != nil {
			return err
		}

		currentTotal := line.ScannedQty.Add(sum)
		delta := opname.AdjustmentFromTotal(currentTotal, in.NewTotal)
		if delta.IsZero() {
			// Total sin cambio: no se crea registro.
			resp = &dto.UpdateTotalResponse{
				Adjusted: false,
				Delta:    delta,
				Line:     toLineDTO(*line, opname.Reconcile(line.SystemQty, line.ScannedQty, sum, line.Hpp)),
			}
			return nil
		}

		adj := &entity.VerificationAdjustment{
			ID:        uuid.New().String(),
			LineID:    lineID,
			Delta:     delta,
			Note:      in.Note,
			CreatedBy: updatedBy,
			CreatedAt: time.Now(),
		}
		if err := adjRepo.Create(ctx, adj); err != nil {
			return err
		}

		resp = &dto.UpdateTotalResponse{
			Adjusted: true,
			Delta:    delta,
			Line:     toLineDTO(*line, opname.Reconcile(line.SystemQty, line.ScannedQty, sum.Add(delta), line.Hpp)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if resp.Adjusted {
		uc.log.Info().
			Int64("line_id", lineID).
			Str("delta", resp.Delta.String()).
			Str("updated_by", updatedBy).
			Msg("ajuste de verificación registrado")
	}
	return resp, nil
}

func toLineDTO(l ErpLine, r opname.Reconciliation) dto.VerificationLineDTO {
	return dto.VerificationLineDTO{
		LineID:          l.ID,
		ProductKey:      l.ProductKey,
		ProductName:     l.ProductName,
		LocationName:    l.LocationName,
		SystemQty:       r.SystemQty,
		ScannedQty:      r.ScannedQty,
		VerificationQty: r.VerificationQty,
		TotalQty:        r.TotalQty,
		DiffQty:         r.DiffQty,
		Status:          string(r.Status),
		Hpp:             l.Hpp,
		HppDiff:         r.HppDiff,
	}
}
