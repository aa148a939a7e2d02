package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Arqueo is the count-and-compare record of a turno. One per turno,
// immutable after creation.
//
//	MontoEsperado = apertura.MontoInicial + ActividadNeta - TotalPagosProveedores
//	Diferencia    = MontoContado - MontoEsperado
type Arqueo struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TurnoID               *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	MontoContado          decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	ActividadNeta         decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	MontoEsperado         decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	MontoFinal            decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Diferencia            decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	TotalPagosProveedores decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Comentario            *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (Arqueo) TableName() string { return "arqueos" }

func (a *Arqueo) BeforeCreate(_ *gorm.DB) error {
	asignarID(&a.ID)
	return nil
}
