package repository

import (
	"go-shop-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegisterRepository interface {
	Create(session *model.RegisterSession) error
	Save(session *model.RegisterSession) error
	FindByID(id uuid.UUID) (*model.RegisterSession, error)
	FindOpenByUser(userID uuid.UUID) (*model.RegisterSession, error)
	FindAll(offset, limit int) ([]model.RegisterSession, int64, error)
	FindByUser(userID uuid.UUID, offset, limit int) ([]model.RegisterSession, int64, error)
}

type registerRepo struct {
	db *gorm.DB
}

func NewRegisterRepo(db *gorm.DB) RegisterRepository {
	return &registerRepo{db: db}
}

func (r *registerRepo) Create(session *model.RegisterSession) error {
	return r.db.Create(session).Error
}

func (r *registerRepo) Save(session *model.RegisterSession) error {
	return r.db.Save(session).Error
}

func (r *registerRepo) FindByID(id uuid.UUID) (*model.RegisterSession, error) {
	var session model.RegisterSession
	if err := r.db.First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *registerRepo) FindOpenByUser(userID uuid.UUID) (*model.RegisterSession, error) {
	var session model.RegisterSession
	err := r.db.Where("user_id = ? AND status = ?", userID, model.RegisterOpen).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *registerRepo) FindAll(offset, limit int) ([]model.RegisterSession, int64, error) {
	var total int64
	if err := r.db.Model(&model.RegisterSession{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []model.RegisterSession
	err := r.db.Order("opened_at desc").Offset(offset).Limit(limit).Find(&sessions).Error
	return sessions, total, err
}

func (r *registerRepo) FindByUser(userID uuid.UUID, offset, limit int) ([]model.RegisterSession, int64, error) {
	q := r.db.Model(&model.RegisterSession{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []model.RegisterSession
	err := q.Order("opened_at desc").Offset(offset).Limit(limit).Find(&sessions).Error
	return sessions, total, err
}
