package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/opname-api/internal/application/dto"
	"github.com/jhoicas/opname-api/internal/application/session"
	"github.com/jhoicas/opname-api/internal/domain"
	"github.com/jhoicas/opname-api/internal/domain/entity"
	"github.com/jhoicas/opname-api/internal/domain/repository"
)

// ── Fakes en memoria ──────────────────────────────────────────────────────────

type fakeSessionRepo struct {
	sessions map[string]*entity.OpnameSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*entity.OpnameSession{}}
}

func (f *fakeSessionRepo) Create(_ context.Context, s *entity.OpnameSession) error {
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id string) (*entity.OpnameSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionRepo) List(_ context.Context, warehouseID *int64, limit, offset int) ([]*entity.OpnameSession, error) {
	var out []*entity.OpnameSession
	for _, s := range f.sessions {
		if warehouseID != nil && s.WarehouseID != *warehouseID {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeSessionRepo) Update(_ context.Context, s *entity.OpnameSession) error {
	if _, ok := f.sessions[s.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

type fakeScanRepo struct {
	scans []*entity.ScanRecord
}

func (f *fakeScanRepo) Create(_ context.Context, s *entity.ScanRecord) error {
	f.scans = append(f.scans, s)
	return nil
}

func (f *fakeScanRepo) ListConfirmed(context.Context, repository.ScanFilter) ([]*entity.ScanRecord, error) {
	return nil, nil
}

func (f *fakeScanRepo) ListBySession(_ context.Context, sessionID string) ([]*entity.ScanRecord, error) {
	var out []*entity.ScanRecord
	for _, s := range f.scans {
		if s.SessionID == sessionID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeWarehouseRepo struct{}

func (fakeWarehouseRepo) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	if id == 1 {
		return &entity.Warehouse{ID: 1, Name: "Bodega Central"}, nil
	}
	return nil, nil
}

func (fakeWarehouseRepo) List(context.Context) ([]*entity.Warehouse, error) {
	return []*entity.Warehouse{{ID: 1, Name: "Bodega Central"}}, nil
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func newUC() (*session.UseCase, *fakeSessionRepo, *fakeScanRepo) {
	sessionRepo := newFakeSessionRepo()
	scanRepo := &fakeScanRepo{}
	return session.NewUseCase(sessionRepo, scanRepo, fakeWarehouseRepo{}), sessionRepo, scanRepo
}

func TestCreate_SesionAbierta(t *testing.T) {
	uc, _, _ := newUC()

	resp, err := uc.Create(context.Background(), dto.CreateSessionRequest{WarehouseID: 1, CreatedBy: "contador-1"})

	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusOpen, resp.Status)
	assert.NotEmpty(t, resp.ID)
	assert.Regexp(t, `^OPN-\d{8}-[0-9A-F]{8}$`, resp.Code)
}

func TestCreate_BodegaInexistente(t *testing.T) {
	uc, _, _ := newUC()

	_, err := uc.Create(context.Background(), dto.CreateSessionRequest{WarehouseID: 99, CreatedBy: "contador-1"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfirm_MarcaConfirmada(t *testing.T) {
	uc, _, _ := newUC()
	created, err := uc.Create(context.Background(), dto.CreateSessionRequest{WarehouseID: 1, CreatedBy: "contador-1"})
	require.NoError(t, err)

	resp, err := uc.Confirm(context.Background(), created.ID, dto.ConfirmSessionRequest{ConfirmedBy: "lider-1"})

	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusConfirmed, resp.Status)
	assert.Equal(t, "lider-1", resp.ConfirmedBy)
	require.NotNil(t, resp.ConfirmedAt)
	assert.WithinDuration(t, time.Now(), *resp.ConfirmedAt, time.Minute)
}

func TestConfirm_DobleConfirmacion(t *testing.T) {
	uc, _, _ := newUC()
	created, err := uc.Create(context.Background(), dto.CreateSessionRequest{WarehouseID: 1, CreatedBy: "contador-1"})
	require.NoError(t, err)
	_, err = uc.Confirm(context.Background(), created.ID, dto.ConfirmSessionRequest{ConfirmedBy: "lider-1"})
	require.NoError(t, err)

	_, err = uc.Confirm(context.Background(), created.ID, dto.ConfirmSessionRequest{ConfirmedBy: "lider-2"})

	assert.ErrorIs(t, err, domain.ErrSessionConfirmed)
}

func TestAddScan_HeredaDatosDeSesion(t *testing.T) {
	uc, _, scanRepo := newUC()
	created, err := uc.Create(context.Background(), dto.CreateSessionRequest{WarehouseID: 1, CreatedBy: "contador-1"})
	require.NoError(t, err)
	uomID := int64(3)

	scan, err := uc.AddScan(context.Background(), created.ID, dto.AddScanRequest{
		ProductKey:  "ABC-123",
		ProductName: "Tornillo M4",
		Quantity:    decimal.NewFromInt(6),
		UomID:       &uomID,
		LocationID:  4,
		CreatedBy:   "contador-1",
	})

	require.NoError(t, err)
	assert.Equal(t, created.ID, scan.SessionID)
	assert.Equal(t, created.Code, scan.SessionCode)
	assert.Equal(t, int64(1), scan.WarehouseID, "la bodega viene de la sesión, no del request")
	require.Len(t, scanRepo.scans, 1)
}

func TestAddScan_SesionConfirmadaRechaza(t *testing.T) {
	uc, _, _ := newUC()
	created, err := uc.Create(context.Background(), dto.CreateSessionRequest{WarehouseID: 1, CreatedBy: "contador-1"})
	require.NoError(t, err)
	_, err = uc.Confirm(context.Background(), created.ID, dto.ConfirmSessionRequest{ConfirmedBy: "lider-1"})
	require.NoError(t, err)

	_, err = uc.AddScan(context.Background(), created.ID, dto.AddScanRequest{
		ProductKey: "ABC-123",
		Quantity:   decimal.NewFromInt(1),
		CreatedBy:  "contador-1",
	})

	assert.ErrorIs(t, err, domain.ErrSessionNotOpen)
}

func TestAddScan_CantidadCeroRechaza(t *testing.T) {
	uc, _, _ := newUC()
	created, err := uc.Create(context.Background(), dto.CreateSessionRequest{WarehouseID: 1, CreatedBy: "contador-1"})
	require.NoError(t, err)

	_, err = uc.AddScan(context.Background(), created.ID, dto.AddScanRequest{
		ProductKey: "ABC-123",
		Quantity:   decimal.Zero,
		CreatedBy:  "contador-1",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
