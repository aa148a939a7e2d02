package repository

import (
	"context"
	"time"

	"catu/internal/dto"
	"catu/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrasladoRepository interface {
	Create(ctx context.Context, t *model.Traslado) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Traslado, error)
	FindByArqueo(ctx context.Context, arqueoID uuid.UUID) (*model.Traslado, error)
	// Transitar applies from→to only if the row is still in from, together
	// with the extra columns in campos. 0 rows affected = lost the race.
	Transitar(ctx context.Context, id uuid.UUID, from, to model.EstadoTraslado, campos map[string]interface{}) (int64, error)

	CreateRecepcion(ctx context.Context, r *model.Recepcion) error
	FindRecepcion(ctx context.Context, trasladoID uuid.UUID) (*model.Recepcion, error)

	// Read model: traslado joined with every linked record.
	FindVista(ctx context.Context, id uuid.UUID) (*model.Traslado, error)
	ListVista(ctx context.Context, filter dto.TrasladoFilter) ([]model.Traslado, int64, error)
	ListEnTransitoAntesDe(ctx context.Context, limite time.Time) ([]model.Traslado, error)
}

type trasladoRepo struct{ db *gorm.DB }

func NewTrasladoRepository(db *gorm.DB) TrasladoRepository { return &trasladoRepo{db: db} }

func (r *trasladoRepo) Create(ctx context.Context, t *model.Traslado) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *trasladoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Traslado, error) {
	var t model.Traslado
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	return &t, err
}

func (r *trasladoRepo) FindByArqueo(ctx context.Context, arqueoID uuid.UUID) (*model.Traslado, error) {
	var t model.Traslado
	err := r.db.WithContext(ctx).Where("arqueo_id = ?", arqueoID).First(&t).Error
	return &t, err
}

func (r *trasladoRepo) Transitar(ctx context.Context, id uuid.UUID, from, to model.EstadoTraslado, campos map[string]interface{}) (int64, error) {
	updates := map[string]interface{}{"estado": to.String(), "updated_at": time.Now()}
	for k, v := range campos {
		updates[k] = v
	}
	res := r.db.WithContext(ctx).Model(&model.Traslado{}).
		Where("id = ? AND estado = ?", id, from.String()).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *trasladoRepo) CreateRecepcion(ctx context.Context, rec *model.Recepcion) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *trasladoRepo) FindRecepcion(ctx context.Context, trasladoID uuid.UUID) (*model.Recepcion, error) {
	var rec model.Recepcion
	err := r.db.WithContext(ctx).Where("traslado_id = ?", trasladoID).First(&rec).Error
	return &rec, err
}

func (r *trasladoRepo) vista(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Arqueo").
		Preload("CajaOrigen").
		Preload("CajaDestino").
		Preload("EmpleadoEnvia").
		Preload("Turno.Empleado").
		Preload("Turno.Caja").
		Preload("Recepcion.EmpleadoRecibe")
}

func (r *trasladoRepo) FindVista(ctx context.Context, id uuid.UUID) (*model.Traslado, error) {
	var t model.Traslado
	err := r.vista(ctx).Where("id = ?", id).First(&t).Error
	return &t, err
}

func (r *trasladoRepo) ListVista(ctx context.Context, filter dto.TrasladoFilter) ([]model.Traslado, int64, error) {
	var traslados []model.Traslado
	var total int64

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Traslado{})
	if len(filter.Estados) > 0 {
		estados := make([]string, len(filter.Estados))
		for i, e := range filter.Estados {
			estados[i] = e.String()
		}
		q = q.Where("estado IN ?", estados)
	}
	if filter.Desde != nil {
		q = q.Where("fecha_hora >= ?", *filter.Desde)
	}
	if filter.CajaOrigenID != nil {
		q = q.Where("caja_origen_id = ?", *filter.CajaOrigenID)
	}
	if filter.CajaDestinoID != nil {
		q = q.Where("caja_destino_id = ?", *filter.CajaDestinoID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Arqueo").
		Preload("CajaOrigen").
		Preload("CajaDestino").
		Preload("EmpleadoEnvia").
		Preload("Turno.Empleado").
		Preload("Turno.Caja").
		Preload("Recepcion.EmpleadoRecibe").
		Order("fecha_hora DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&traslados).Error

	return traslados, total, err
}

func (r *trasladoRepo) ListEnTransitoAntesDe(ctx context.Context, limite time.Time) ([]model.Traslado, error) {
	var traslados []model.Traslado
	err := r.vista(ctx).
		Where("estado = ? AND despachado_en < ?", model.TrasladoEnTransito.String(), limite).
		Order("despachado_en ASC").
		Find(&traslados).Error
	return traslados, err
}
