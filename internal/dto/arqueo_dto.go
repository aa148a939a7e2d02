package dto

import (
	"time"

	"catu/internal/model"

	"github.com/shopspring/decimal"
)

// ArqueoRequest is the operator's count. ActividadNeta, when present, takes
// precedence over the activity-totals provider.
type ArqueoRequest struct {
	MontoContado  decimal.Decimal  `json:"monto_contado"  validate:"min=0"`
	Comentario    *string          `json:"comentario"`
	ActividadNeta *decimal.Decimal `json:"actividad_neta"`
}

type ArqueoResponse struct {
	ID                    string          `json:"id"`
	TurnoID               string          `json:"turno_id"`
	MontoContado          decimal.Decimal `json:"monto_contado"`
	ActividadNeta         decimal.Decimal `json:"actividad_neta"`
	TotalPagosProveedores decimal.Decimal `json:"total_pagos_proveedores"`
	MontoEsperado         decimal.Decimal `json:"monto_esperado"`
	MontoFinal            decimal.Decimal `json:"monto_final"`
	Diferencia            decimal.Decimal `json:"diferencia"`
	Resultado             model.Resultado `json:"resultado"`
	Comentario            *string         `json:"comentario"`
	CreatedAt             time.Time       `json:"created_at"`
}
