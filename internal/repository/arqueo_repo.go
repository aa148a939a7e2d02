package repository

import (
	"context"

	"catu/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ArqueoRepository interface {
	Create(ctx context.Context, a *model.Arqueo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Arqueo, error)
	FindByTurno(ctx context.Context, turnoID uuid.UUID) (*model.Arqueo, error)
}

type arqueoRepo struct{ db *gorm.DB }

func NewArqueoRepository(db *gorm.DB) ArqueoRepository { return &arqueoRepo{db: db} }

func (r *arqueoRepo) Create(ctx context.Context, a *model.Arqueo) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *arqueoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Arqueo, error) {
	var a model.Arqueo
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	return &a, err
}

func (r *arqueoRepo) FindByTurno(ctx context.Context, turnoID uuid.UUID) (*model.Arqueo, error) {
	var a model.Arqueo
	err := r.db.WithContext(ctx).Where("turno_id = ?", turnoID).First(&a).Error
	return &a, err
}
