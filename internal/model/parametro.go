package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClaveToleranciaDiferencia overrides TOLERANCIA_DIFERENCIA at runtime.
const ClaveToleranciaDiferencia = "tolerancia_diferencia"

// Parametro is a runtime setting stored as clave/valor.
type Parametro struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Clave       string    `gorm:"uniqueIndex;not null"`
	Valor       string    `gorm:"not null"`
	Descripcion *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Parametro) TableName() string { return "parametros" }

func (p *Parametro) BeforeCreate(_ *gorm.DB) error {
	asignarID(&p.ID)
	return nil
}
