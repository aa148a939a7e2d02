package repository

import (
	"context"
	"time"

	"catu/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TurnoRepository interface {
	Create(ctx context.Context, t *model.Turno) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Turno, error)
	FindAbiertoPorCaja(ctx context.Context, cajaID uuid.UUID) (*model.Turno, error)
	// Cerrar moves the turno from abierto to cerrado. Returns the number of
	// rows changed: 0 means the turno was not abierto.
	Cerrar(ctx context.Context, id uuid.UUID, fin time.Time) (int64, error)

	CreateApertura(ctx context.Context, a *model.Apertura) error
	FindApertura(ctx context.Context, turnoID uuid.UUID) (*model.Apertura, error)
	MarcarAperturaCerrada(ctx context.Context, turnoID uuid.UUID) error
	AnotarApertura(ctx context.Context, turnoID uuid.UUID, nota string) (int64, error)

	// Pagos are immutable, there is no Update/Delete.
	CreatePago(ctx context.Context, p *model.PagoProveedor) error
	ListPagos(ctx context.Context, turnoID uuid.UUID) ([]model.PagoProveedor, error)
}

type turnoRepo struct{ db *gorm.DB }

func NewTurnoRepository(db *gorm.DB) TurnoRepository { return &turnoRepo{db: db} }

func (r *turnoRepo) Create(ctx context.Context, t *model.Turno) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *turnoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Turno, error) {
	var t model.Turno
	err := r.db.WithContext(ctx).Preload("Caja").Preload("Empleado").Where("id = ?", id).First(&t).Error
	return &t, err
}

func (r *turnoRepo) FindAbiertoPorCaja(ctx context.Context, cajaID uuid.UUID) (*model.Turno, error) {
	var t model.Turno
	err := r.db.WithContext(ctx).
		Where("caja_id = ? AND estado = ?", cajaID, model.TurnoAbierto.String()).
		First(&t).Error
	return &t, err
}

func (r *turnoRepo) Cerrar(ctx context.Context, id uuid.UUID, fin time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Turno{}).
		Where("id = ? AND estado = ?", id, model.TurnoAbierto.String()).
		Updates(map[string]interface{}{
			"estado":     model.TurnoCerrado.String(),
			"fin":        fin,
			"updated_at": time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (r *turnoRepo) CreateApertura(ctx context.Context, a *model.Apertura) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *turnoRepo) FindApertura(ctx context.Context, turnoID uuid.UUID) (*model.Apertura, error) {
	var a model.Apertura
	err := r.db.WithContext(ctx).Where("turno_id = ?", turnoID).First(&a).Error
	return &a, err
}

func (r *turnoRepo) MarcarAperturaCerrada(ctx context.Context, turnoID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Apertura{}).
		Where("turno_id = ?", turnoID).
		Updates(map[string]interface{}{"cerrada": true, "updated_at": time.Now()}).Error
}

func (r *turnoRepo) AnotarApertura(ctx context.Context, turnoID uuid.UUID, nota string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Apertura{}).
		Where("turno_id = ?", turnoID).
		Updates(map[string]interface{}{"observaciones": nota, "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}

func (r *turnoRepo) CreatePago(ctx context.Context, p *model.PagoProveedor) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *turnoRepo) ListPagos(ctx context.Context, turnoID uuid.UUID) ([]model.PagoProveedor, error) {
	var pagos []model.PagoProveedor
	err := r.db.WithContext(ctx).Where("turno_id = ?", turnoID).Order("fecha_hora ASC").Find(&pagos).Error
	return pagos, err
}
