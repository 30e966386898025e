package service

import (
	"errors"
	"time"

	"go-shop-admin/internal/apperr"
	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"
	"go-shop-admin/internal/ws"
	"go-shop-admin/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RegisterService interface {
	Open(userID uuid.UUID, req *OpenRegisterRequest) (*model.RegisterSession, error)
	Close(userID uuid.UUID, req *CloseRegisterRequest) (*model.RegisterSession, error)
	Current(userID uuid.UUID) (*model.RegisterSession, error)
	List(userID uuid.UUID, all bool, page pagination.Params) (*RegisterListResult, error)
}

type OpenRegisterRequest struct {
	OpeningFloat decimal.Decimal `json:"opening_float"`
	Note         string          `json:"note"`
}

type CloseRegisterRequest struct {
	CountedCash decimal.Decimal `json:"counted_cash"`
	Note        string          `json:"note"`
}

type RegisterListResult struct {
	Sessions    []model.RegisterSession `json:"sessions"`
	Total       int64                   `json:"total"`
	TotalPages  int                     `json:"total_pages"`
	CurrentPage int                     `json:"current_page"`
}

type registerService struct {
	registerRepo repository.RegisterRepository
	saleRepo     repository.SaleRepository
	hub          *ws.Hub
}

func NewRegisterService(registerRepo repository.RegisterRepository, saleRepo repository.SaleRepository, hub *ws.Hub) RegisterService {
	return &registerService{registerRepo: registerRepo, saleRepo: saleRepo, hub: hub}
}

func (s *registerService) Open(userID uuid.UUID, req *OpenRegisterRequest) (*model.RegisterSession, error) {
	if req.OpeningFloat.IsNegative() {
		return nil, apperr.Invalid("Opening float cannot be negative")
	}

	existing, err := s.registerRepo.FindOpenByUser(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		return nil, apperr.Conflict("You already have an open register session")
	}

	session := &model.RegisterSession{
		UserID:       userID,
		Status:       model.RegisterOpen,
		OpeningFloat: req.OpeningFloat,
		OpenedAt:     time.Now(),
		Note:         req.Note,
	}
	if err := s.registerRepo.Create(session); err != nil {
		return nil, apperr.Internal(err)
	}

	s.hub.Publish("register_opened", session)
	return session, nil
}

// Close reconciles the drawer: expected cash is the opening float plus all
// cash sales rung up during the session, difference is counted minus expected.
func (s *registerService) Close(userID uuid.UUID, req *CloseRegisterRequest) (*model.RegisterSession, error) {
	if req.CountedCash.IsNegative() {
		return nil, apperr.Invalid("Counted cash cannot be negative")
	}

	session, err := s.registerRepo.FindOpenByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("No open register session")
		}
		return nil, apperr.Internal(err)
	}

	cashSales, err := s.saleRepo.CashTotalForSession(session.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	now := time.Now()
	session.Status = model.RegisterClosed
	session.CountedCash = req.CountedCash
	session.ExpectedCash = session.OpeningFloat.Add(cashSales)
	session.Difference = req.CountedCash.Sub(session.ExpectedCash)
	session.ClosedAt = &now
	if req.Note != "" {
		session.Note = req.Note
	}

	if err := s.registerRepo.Save(session); err != nil {
		return nil, apperr.Internal(err)
	}

	s.hub.Publish("register_closed", session)
	return session, nil
}

func (s *registerService) Current(userID uuid.UUID) (*model.RegisterSession, error) {
	session, err := s.registerRepo.FindOpenByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("No open register session")
		}
		return nil, apperr.Internal(err)
	}
	return session, nil
}

// List returns the caller's session history, or everyone's when all is set.
// The handler gates all behind the cash register management permission.
func (s *registerService) List(userID uuid.UUID, all bool, page pagination.Params) (*RegisterListResult, error) {
	var (
		sessions []model.RegisterSession
		total    int64
		err      error
	)
	if all {
		sessions, total, err = s.registerRepo.FindAll(page.Offset, page.Limit)
	} else {
		sessions, total, err = s.registerRepo.FindByUser(userID, page.Offset, page.Limit)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &RegisterListResult{
		Sessions:    sessions,
		Total:       total,
		TotalPages:  pagination.TotalPages(total, page.Limit),
		CurrentPage: page.Page,
	}, nil
}
