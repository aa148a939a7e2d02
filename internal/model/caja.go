package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TipoCaja: "ordinaria" | "principal"
type TipoCaja string

const (
	TipoCajaOrdinaria TipoCaja = "ordinaria"
	TipoCajaPrincipal TipoCaja = "principal"
)

// Caja is a physical cash point. By convention a single active caja is
// tipo "principal" and acts as the default destination of traslados.
type Caja struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre    string    `gorm:"not null"`
	Tipo      TipoCaja  `gorm:"type:varchar(20);not null"`
	Activa    bool      `gorm:"not null"`
	Ubicacion *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Caja) TableName() string { return "cajas" }

func (c *Caja) BeforeCreate(_ *gorm.DB) error {
	asignarID(&c.ID)
	return nil
}

// Empleado is the actor referenced by turnos, traslados and recepciones.
type Empleado struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	NombreCompleto string    `gorm:"not null"`
	Cargo          *string
	Activo         bool `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Empleado) TableName() string { return "empleados" }

func (e *Empleado) BeforeCreate(_ *gorm.DB) error {
	asignarID(&e.ID)
	return nil
}

func asignarID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
