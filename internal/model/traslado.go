package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Traslado moves the cash of one arqueo from the origin caja to a destination
// caja. Monto is copied from Arqueo.MontoFinal and never changes afterwards.
type Traslado struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ArqueoID        *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	CajaOrigenID    *uuid.UUID      `gorm:"type:uuid;index"`
	CajaDestinoID   *uuid.UUID      `gorm:"type:uuid;index"`
	EmpleadoEnviaID *uuid.UUID      `gorm:"type:uuid"`
	TurnoID         *uuid.UUID      `gorm:"type:uuid;index"`
	Monto           decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Estado          EstadoTraslado  `gorm:"type:varchar(20);not null;index"`
	FechaHora       time.Time       `gorm:"not null"`
	DespachadoEn    *time.Time
	Observaciones   *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Arqueo        *Arqueo    `gorm:"foreignKey:ArqueoID"`
	CajaOrigen    *Caja      `gorm:"foreignKey:CajaOrigenID"`
	CajaDestino   *Caja      `gorm:"foreignKey:CajaDestinoID"`
	EmpleadoEnvia *Empleado  `gorm:"foreignKey:EmpleadoEnviaID"`
	Turno         *Turno     `gorm:"foreignKey:TurnoID"`
	Recepcion     *Recepcion `gorm:"foreignKey:TrasladoID"`
}

func (Traslado) TableName() string { return "traslados" }

func (t *Traslado) BeforeCreate(_ *gorm.DB) error {
	asignarID(&t.ID)
	return nil
}

// Recepcion confirms the arrival of a traslado. At most one per traslado.
// Diferencia = MontoRecibido - traslado.Monto
type Recepcion struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TrasladoID       *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	EmpleadoRecibeID *uuid.UUID      `gorm:"type:uuid"`
	TurnoReceptorID  *uuid.UUID      `gorm:"type:uuid"`
	MontoRecibido    decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Diferencia       decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	FechaHora        time.Time       `gorm:"not null"`
	Comentario       *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	EmpleadoRecibe *Empleado `gorm:"foreignKey:EmpleadoRecibeID"`
}

func (Recepcion) TableName() string { return "recepciones" }

func (r *Recepcion) BeforeCreate(_ *gorm.DB) error {
	asignarID(&r.ID)
	return nil
}
