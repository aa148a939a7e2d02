package dto

import (
	"time"

	"catu/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// IniciarTrasladoRequest: CajaDestinoID defaults to the active principal caja,
// EmpleadoEnviaID to the employee of the arqueo's turno.
type IniciarTrasladoRequest struct {
	ArqueoID        uuid.UUID  `json:"arqueo_id"         validate:"required"`
	CajaDestinoID   *uuid.UUID `json:"caja_destino_id"`
	EmpleadoEnviaID *uuid.UUID `json:"empleado_envia_id"`
	Observaciones   *string    `json:"observaciones"`
}

type RecibirTrasladoRequest struct {
	EmpleadoRecibeID uuid.UUID       `json:"empleado_recibe_id"`
	MontoRecibido    decimal.Decimal `json:"monto_recibido"`
	Comentario       string          `json:"comentario"`
	TurnoReceptorID  *uuid.UUID      `json:"turno_receptor_id"`
}

// TrasladoFilter drives the listing read model. Empty Estados = all.
type TrasladoFilter struct {
	Estados       []model.EstadoTraslado
	Desde         *time.Time
	CajaOrigenID  *uuid.UUID
	CajaDestinoID *uuid.UUID
	Page          int
	Limit         int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TrasladoResponse struct {
	ID              string               `json:"id"`
	ArqueoID        *uuid.UUID           `json:"arqueo_id"`
	CajaOrigenID    *uuid.UUID           `json:"caja_origen_id"`
	CajaDestinoID   *uuid.UUID           `json:"caja_destino_id"`
	EmpleadoEnviaID *uuid.UUID           `json:"empleado_envia_id"`
	TurnoID         *uuid.UUID           `json:"turno_id"`
	Monto           decimal.Decimal      `json:"monto"`
	Estado          model.EstadoTraslado `json:"estado"`
	FechaHora       time.Time            `json:"fecha_hora"`
	DespachadoEn    *time.Time           `json:"despachado_en"`
	Observaciones   *string              `json:"observaciones"`
}

type RecepcionResponse struct {
	ID               string               `json:"id"`
	TrasladoID       string               `json:"traslado_id"`
	EmpleadoRecibeID string               `json:"empleado_recibe_id"`
	MontoEsperado    decimal.Decimal      `json:"monto_esperado"`
	MontoRecibido    decimal.Decimal      `json:"monto_recibido"`
	Diferencia       decimal.Decimal      `json:"diferencia"`
	Resultado        model.Resultado      `json:"resultado"`
	EstadoTraslado   model.EstadoTraslado `json:"estado_traslado"`
	FechaHora        time.Time            `json:"fecha_hora"`
	Comentario       *string              `json:"comentario"`
}
