package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/opname-api/internal/application/dto"
	"github.com/jhoicas/opname-api/internal/domain"
	"github.com/jhoicas/opname-api/internal/domain/entity"
	"github.com/jhoicas/opname-api/internal/domain/repository"
)

// UseCase maneja el ciclo de vida de las sesiones de opname: apertura,
// registro de escaneos y confirmación por el líder. Solo los escaneos de
// sesiones confirmadas entran a la agregación.
type UseCase struct {
	sessionRepo   repository.SessionRepository
	scanRepo      repository.ScanRepository
	warehouseRepo repository.WarehouseRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	sessionRepo repository.SessionRepository,
	scanRepo repository.ScanRepository,
	warehouseRepo repository.WarehouseRepository,
) *UseCase {
	return &UseCase{
		sessionRepo:   sessionRepo,
		scanRepo:      scanRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Create abre una sesión para una bodega existente.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	if in.WarehouseID == 0 || in.CreatedBy == "" {
		return nil, domain.ErrInvalidInput
	}
	warehouse, err := uc.warehouseRepo.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	session := &entity.OpnameSession{
		ID:          uuid.New().String(),
		Code:        newSessionCode(now),
		WarehouseID: in.WarehouseID,
		Status:      entity.SessionStatusOpen,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   now,
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

// GetByID obtiene una sesión por id.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.SessionResponse, error) {
	session, err := uc.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	return toSessionResponse(session), nil
}

// List lista sesiones, opcionalmente por bodega, con paginación.
func (uc *UseCase) List(ctx context.Context, warehouseID *int64, page dto.PageRequest) ([]dto.SessionResponse, error) {
	page.DefaultPage()
	list, err := uc.sessionRepo.List(ctx, warehouseID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSessionResponse(s))
	}
	return out, nil
}

// Confirm marca la sesión como confirmada (acción del líder de bodega).
// Una sesión ya confirmada no se puede volver a confirmar.
func (uc *UseCase) Confirm(ctx context.Context, id string, in dto.ConfirmSessionRequest) (*dto.SessionResponse, error) {
	if in.ConfirmedBy == "" {
		return nil, domain.ErrInvalidInput
	}
	session, err := uc.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	if session.Status == entity.SessionStatusConfirmed {
		return nil, domain.ErrSessionConfirmed
	}
	if session.Status != entity.SessionStatusOpen {
		return nil, domain.ErrSessionNotOpen
	}

	now := time.Now()
	session.Status = entity.SessionStatusConfirmed
	session.ConfirmedBy = in.ConfirmedBy
	session.ConfirmedAt = &now
	if err := uc.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

// AddScan registra un escaneo dentro de una sesión abierta.
func (uc *UseCase) AddScan(ctx context.Context, sessionID string, in dto.AddScanRequest) (*entity.ScanRecord, error) {
	if in.ProductKey == "" || in.Quantity.IsZero() || in.CreatedBy == "" {
		return nil, domain.ErrInvalidInput
	}
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	if session.Status != entity.SessionStatusOpen {
		return nil, domain.ErrSessionNotOpen
	}

	scan := &entity.ScanRecord{
		ID:           uuid.New().String(),
		SessionID:    session.ID,
		SessionCode:  session.Code,
		WarehouseID:  session.WarehouseID,
		ProductKey:   in.ProductKey,
		ProductName:  in.ProductName,
		Quantity:     in.Quantity,
		UomID:        in.UomID,
		LocationID:   in.LocationID,
		LocationName: in.LocationName,
		CreatedBy:    in.CreatedBy,
		CreatedAt:    time.Now(),
	}
	if err := uc.scanRepo.Create(ctx, scan); err != nil {
		return nil, err
	}
	return scan, nil
}

// ListScans lista los escaneos de una sesión.
func (uc *UseCase) ListScans(ctx context.Context, sessionID string) ([]*entity.ScanRecord, error) {
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	return uc.scanRepo.ListBySession(ctx, sessionID)
}

// newSessionCode genera un consecutivo legible, ej. OPN-20240131-7F3A21C4.
func newSessionCode(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("OPN-%s-%s", now.Format("20060102"), suffix)
}

func toSessionResponse(s *entity.OpnameSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		ID:          s.ID,
		Code:        s.Code,
		WarehouseID: s.WarehouseID,
		Status:      s.Status,
		CreatedBy:   s.CreatedBy,
		ConfirmedBy: s.ConfirmedBy,
		CreatedAt:   s.CreatedAt,
		ConfirmedAt: s.ConfirmedAt,
	}
}
