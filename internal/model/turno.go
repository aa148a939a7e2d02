package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Turno is one employee's custody window over one caja.
// Only one turno per caja may be "abierto" (partial unique index).
// Turnos are never deleted.
type Turno struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey"`
	CajaID     *uuid.UUID  `gorm:"type:uuid;index;uniqueIndex:idx_turnos_caja_abierto,where:estado = 'abierto'"`
	EmpleadoID *uuid.UUID  `gorm:"type:uuid;index"`
	Estado     EstadoTurno `gorm:"type:varchar(20)"`
	Inicio     *time.Time
	Fin        *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Caja     *Caja     `gorm:"foreignKey:CajaID"`
	Empleado *Empleado `gorm:"foreignKey:EmpleadoID"`
}

func (Turno) TableName() string { return "turnos" }

func (t *Turno) BeforeCreate(_ *gorm.DB) error {
	asignarID(&t.ID)
	return nil
}

// Apertura is the starting float declared when the turno opens.
// Immutable once set except for Observaciones (operator closing note).
type Apertura struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TurnoID       *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	MontoInicial  decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Cerrada       bool            `gorm:"not null"`
	Observaciones *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Apertura) TableName() string { return "aperturas" }

func (a *Apertura) BeforeCreate(_ *gorm.DB) error {
	asignarID(&a.ID)
	return nil
}

// PagoProveedor is a cash outflow recorded against an open turno.
// It reduces the expected cash of the arqueo and is never modified.
type PagoProveedor struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TurnoID   *uuid.UUID      `gorm:"type:uuid;index"`
	Concepto  string          `gorm:"not null"`
	Valor     decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	FechaHora time.Time       `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PagoProveedor) TableName() string { return "pagos_proveedores" }

func (p *PagoProveedor) BeforeCreate(_ *gorm.DB) error {
	asignarID(&p.ID)
	return nil
}
