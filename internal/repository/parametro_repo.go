package repository

import (
	"context"

	"catu/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ParametroRepository interface {
	FindByClave(ctx context.Context, clave string) (*model.Parametro, error)
	// Upsert inserts or replaces the valor of a clave.
	Upsert(ctx context.Context, p *model.Parametro) error
}

type parametroRepo struct{ db *gorm.DB }

func NewParametroRepository(db *gorm.DB) ParametroRepository { return &parametroRepo{db: db} }

func (r *parametroRepo) FindByClave(ctx context.Context, clave string) (*model.Parametro, error) {
	var p model.Parametro
	err := r.db.WithContext(ctx).Where("clave = ?", clave).First(&p).Error
	return &p, err
}

func (r *parametroRepo) Upsert(ctx context.Context, p *model.Parametro) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "clave"}},
		DoUpdates: clause.AssignmentColumns([]string{"valor", "descripcion", "updated_at"}),
	}).Create(p).Error
}
