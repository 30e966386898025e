package service

import (
	"testing"
	"time"

	"go-shop-admin/internal/apperr"
	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"
	"go-shop-admin/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRegisterRepo struct {
	sessions map[uuid.UUID]*model.RegisterSession
}

func newFakeRegisterRepo() *fakeRegisterRepo {
	return &fakeRegisterRepo{sessions: make(map[uuid.UUID]*model.RegisterSession)}
}

func (f *fakeRegisterRepo) Create(s *model.RegisterSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *fakeRegisterRepo) Save(s *model.RegisterSession) error {
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *fakeRegisterRepo) FindByID(id uuid.UUID) (*model.RegisterSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRegisterRepo) FindOpenByUser(userID uuid.UUID) (*model.RegisterSession, error) {
	for _, s := range f.sessions {
		if s.UserID == userID && s.Status == model.RegisterOpen {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRegisterRepo) FindAll(offset, limit int) ([]model.RegisterSession, int64, error) {
	return nil, 0, nil
}

func (f *fakeRegisterRepo) FindByUser(userID uuid.UUID, offset, limit int) ([]model.RegisterSession, int64, error) {
	return nil, 0, nil
}

// fakeSaleRepo returns a fixed cash total per session.
type fakeSaleRepo struct {
	cashTotals map[uuid.UUID]decimal.Decimal
	counts     map[uuid.UUID]int64
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{
		cashTotals: make(map[uuid.UUID]decimal.Decimal),
		counts:     make(map[uuid.UUID]int64),
	}
}

func (f *fakeSaleRepo) Create(tx *gorm.DB, sale *model.Sale) error { return nil }

func (f *fakeSaleRepo) FindAll(filter repository.SaleFilter, offset, limit int) ([]model.Sale, int64, error) {
	return nil, 0, nil
}

func (f *fakeSaleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSaleRepo) Summary(from, to time.Time) (*model.SalesSummary, error) {
	return &model.SalesSummary{}, nil
}

func (f *fakeSaleRepo) CountBySupplier(supplierID uuid.UUID) (int64, error) {
	return f.counts[supplierID], nil
}

func (f *fakeSaleRepo) CashTotalForSession(sessionID uuid.UUID) (decimal.Decimal, error) {
	if total, ok := f.cashTotals[sessionID]; ok {
		return total, nil
	}
	return decimal.Zero, nil
}

func runningHub() *ws.Hub {
	hub := ws.NewHub()
	go hub.Run()
	return hub
}

func TestRegisterOpen_RejectsSecondOpenSession(t *testing.T) {
	svc := NewRegisterService(newFakeRegisterRepo(), newFakeSaleRepo(), runningHub())
	userID := uuid.New()

	_, err := svc.Open(userID, &OpenRegisterRequest{OpeningFloat: decimal.NewFromInt(100)})
	require.NoError(t, err)

	_, err = svc.Open(userID, &OpenRegisterRequest{OpeningFloat: decimal.NewFromInt(50)})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestRegisterOpen_NegativeFloat(t *testing.T) {
	svc := NewRegisterService(newFakeRegisterRepo(), newFakeSaleRepo(), runningHub())

	_, err := svc.Open(uuid.New(), &OpenRegisterRequest{OpeningFloat: decimal.NewFromInt(-1)})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestRegisterClose_Reconciliation(t *testing.T) {
	registerRepo := newFakeRegisterRepo()
	saleRepo := newFakeSaleRepo()
	svc := NewRegisterService(registerRepo, saleRepo, runningHub())
	userID := uuid.New()

	opened, err := svc.Open(userID, &OpenRegisterRequest{OpeningFloat: decimal.NewFromInt(100)})
	require.NoError(t, err)
	saleRepo.cashTotals[opened.ID] = decimal.NewFromInt(250)

	closed, err := svc.Close(userID, &CloseRegisterRequest{CountedCash: decimal.NewFromInt(340)})
	require.NoError(t, err)

	assert.Equal(t, model.RegisterClosed, closed.Status)
	assert.True(t, closed.ExpectedCash.Equal(decimal.NewFromInt(350)), "expected = float + cash sales, got %s", closed.ExpectedCash)
	assert.True(t, closed.Difference.Equal(decimal.NewFromInt(-10)), "difference = counted - expected, got %s", closed.Difference)
	require.NotNil(t, closed.ClosedAt)

	// The drawer is free for a new session afterwards.
	_, err = svc.Open(userID, &OpenRegisterRequest{OpeningFloat: decimal.Zero})
	require.NoError(t, err)
}

func TestRegisterClose_NoOpenSession(t *testing.T) {
	svc := NewRegisterService(newFakeRegisterRepo(), newFakeSaleRepo(), runningHub())

	_, err := svc.Close(uuid.New(), &CloseRegisterRequest{CountedCash: decimal.Zero})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
