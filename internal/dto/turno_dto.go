package dto

import (
	"time"

	"catu/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirTurnoRequest struct {
	CajaID        uuid.UUID       `json:"caja_id"       validate:"required"`
	EmpleadoID    uuid.UUID       `json:"empleado_id"   validate:"required"`
	MontoInicial  decimal.Decimal `json:"monto_inicial" validate:"min=0"`
	Observaciones *string         `json:"observaciones"`
}

type PagoProveedorRequest struct {
	Concepto string          `json:"concepto" validate:"required,min=3"`
	Valor    decimal.Decimal `json:"valor"    validate:"required,gt=0"`
}

type NotaAperturaRequest struct {
	Nota string `json:"nota" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AperturaResponse struct {
	ID            string          `json:"id"`
	MontoInicial  decimal.Decimal `json:"monto_inicial"`
	Cerrada       bool            `json:"cerrada"`
	Observaciones *string         `json:"observaciones"`
}

type PagoProveedorResponse struct {
	ID        string          `json:"id"`
	TurnoID   string          `json:"turno_id"`
	Concepto  string          `json:"concepto"`
	Valor     decimal.Decimal `json:"valor"`
	FechaHora time.Time       `json:"fecha_hora"`
}

type TurnoResponse struct {
	ID                    string            `json:"id"`
	CajaID                *uuid.UUID        `json:"caja_id"`
	EmpleadoID            *uuid.UUID        `json:"empleado_id"`
	Estado                model.EstadoTurno `json:"estado"`
	Inicio                *time.Time        `json:"inicio"`
	Fin                   *time.Time        `json:"fin"`
	Apertura              *AperturaResponse `json:"apertura"`
	TotalPagosProveedores decimal.Decimal   `json:"total_pagos_proveedores"`
	Arqueo                *ArqueoResponse   `json:"arqueo"`
}
