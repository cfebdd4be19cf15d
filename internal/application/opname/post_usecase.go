package opname

import (
	"context"
	"fmt"

	"github.com/jhoicas/opname-api/internal/application/dto"
	"github.com/jhoicas/opname-api/internal/domain"
	"github.com/jhoicas/opname-api/pkg/logger"
)

// PostUseCase convierte el resumen agregado en un documento de ajuste de
// inventario del ERP. Los productos con conversión indeterminada se omiten del
// payload y se devuelven para revisión: nunca se postea una cantidad cuya
// unidad de reporte no se pudo determinar.
type PostUseCase struct {
	summary *SummaryUseCase
	erp     ErpGateway
	log     *logger.Logger
}

// NewPostUseCase construye el caso de uso.
func NewPostUseCase(summary *SummaryUseCase, erp ErpGateway, log *logger.Logger) *PostUseCase {
	return &PostUseCase{summary: summary, erp: erp, log: log}
}

// Post agrega el conjunto filtrado completo y lo envía al ERP.
// Devuelve domain.ErrNotFound si no hay nada que postear.
func (uc *PostUseCase) Post(ctx context.Context, warehouseID *int64) (*dto.PostAdjustmentsResponse, error) {
	rows, _, err := uc.summary.Aggregate(ctx, warehouseID, "")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}

	lines := make([]ErpAdjustment, 0, len(rows))
	var skipped []string
	for _, row := range rows {
		if row.ConversionWarning != "" {
			skipped = append(skipped, fmt.Sprintf("%s: %s", row.Name, row.ConversionWarning))
			continue
		}
		lines = append(lines, ErpAdjustment{
			ProductKey:  row.Key,
			ProductName: row.Name,
			WarehouseID: row.WarehouseID,
			Quantity:    row.Quantity,
			UomID:       row.UomID,
		})
	}
	if len(lines) == 0 {
		return nil, domain.ErrMissingTargetUom
	}

	docID, err := uc.erp.PostInventoryAdjustments(ctx, lines)
	if err != nil {
		return nil, fmt.Errorf("postear ajustes: %w", err)
	}

	uc.log.Info().
		Int64("erp_document_id", docID).
		Int("lines", len(lines)).
		Int("skipped", len(skipped)).
		Msg("ajustes de opname posteados al ERP")

	return &dto.PostAdjustmentsResponse{
		ErpDocumentID: docID,
		PostedLines:   len(lines),
		Skipped:       skipped,
	}, nil
}
