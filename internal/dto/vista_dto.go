package dto

import (
	"time"

	"catu/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TrasladoVista is the joined view of a traslado with its arqueo, turno,
// employees, cajas and recepcion. A nil reference means "not yet linked".
type TrasladoVista struct {
	ID            uuid.UUID            `json:"id"`
	Monto         decimal.Decimal      `json:"monto"`
	Estado        model.EstadoTraslado `json:"estado"`
	FechaHora     time.Time            `json:"fecha_hora"`
	DespachadoEn  *time.Time           `json:"despachado_en"`
	Observaciones *string              `json:"observaciones"`

	CajaOrigen    *CajaRef      `json:"caja_origen"`
	CajaDestino   *CajaRef      `json:"caja_destino"`
	EmpleadoEnvia *EmpleadoRef  `json:"empleado_envia"`
	Turno         *TurnoRef     `json:"turno"`
	Arqueo        *ArqueoRef    `json:"arqueo"`
	Recepcion     *RecepcionRef `json:"recepcion"`
}

type CajaRef struct {
	ID        uuid.UUID      `json:"id"`
	Nombre    string         `json:"nombre"`
	Tipo      model.TipoCaja `json:"tipo"`
	Ubicacion *string        `json:"ubicacion"`
}

type EmpleadoRef struct {
	ID             uuid.UUID `json:"id"`
	NombreCompleto string    `json:"nombre_completo"`
	Cargo          *string   `json:"cargo"`
}

type TurnoRef struct {
	ID       uuid.UUID         `json:"id"`
	Estado   model.EstadoTurno `json:"estado"`
	Inicio   *time.Time        `json:"inicio"`
	Fin      *time.Time        `json:"fin"`
	Empleado *EmpleadoRef      `json:"empleado"`
}

type ArqueoRef struct {
	ID                    uuid.UUID       `json:"id"`
	MontoContado          decimal.Decimal `json:"monto_contado"`
	MontoFinal            decimal.Decimal `json:"monto_final"`
	Diferencia            decimal.Decimal `json:"diferencia"`
	TotalPagosProveedores decimal.Decimal `json:"total_pagos_proveedores"`
	CreatedAt             time.Time       `json:"created_at"`
}

type RecepcionRef struct {
	ID             uuid.UUID       `json:"id"`
	EmpleadoRecibe *EmpleadoRef    `json:"empleado_recibe"`
	MontoRecibido  decimal.Decimal `json:"monto_recibido"`
	Diferencia     decimal.Decimal `json:"diferencia"`
	FechaHora      time.Time       `json:"fecha_hora"`
	Comentario     *string         `json:"comentario"`
}

type TrasladoListResponse struct {
	Data  []TrasladoVista `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
