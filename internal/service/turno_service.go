package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"catu/internal/dto"
	"catu/internal/model"
	"catu/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TurnoService interface {
	AbrirTurno(ctx context.Context, req dto.AbrirTurnoRequest) (*dto.TurnoResponse, error)
	RegistrarPagoProveedor(ctx context.Context, turnoID uuid.UUID, req dto.PagoProveedorRequest) (*dto.PagoProveedorResponse, error)
	ListarPagos(ctx context.Context, turnoID uuid.UUID) ([]dto.PagoProveedorResponse, error)
	AnotarCierreApertura(ctx context.Context, turnoID uuid.UUID, req dto.NotaAperturaRequest) error
	ObtenerTurno(ctx context.Context, turnoID uuid.UUID) (*dto.TurnoResponse, error)
	TurnoAbierto(ctx context.Context, cajaID uuid.UUID) (*dto.TurnoResponse, error)
}

type turnoService struct {
	ledger     *repository.Ledger
	tolerancia Tolerancia
}

func NewTurnoService(ledger *repository.Ledger, tolerancia Tolerancia) TurnoService {
	return &turnoService{ledger: ledger, tolerancia: tolerancia}
}

// ── AbrirTurno ────────────────────────────────────────────────────────────────
// Turno "abierto" + Apertura in one transaction. One open turno per caja.

func (s *turnoService) AbrirTurno(ctx context.Context, req dto.AbrirTurnoRequest) (*dto.TurnoResponse, error) {
	if req.MontoInicial.IsNegative() {
		return nil, validationf("el monto inicial no puede ser negativo")
	}

	var turno *model.Turno
	var apertura *model.Apertura
	err := s.ledger.Transaction(ctx, func(tx *repository.Ledger) error {
		caja, err := tx.Cajas.FindByID(ctx, req.CajaID)
		if err != nil {
			return lookupErr(err, "caja %s no encontrada", req.CajaID)
		}
		if !caja.Activa {
			return validationf("la caja %q está inactiva", caja.Nombre)
		}
		emp, err := tx.Empleados.FindByID(ctx, req.EmpleadoID)
		if err != nil {
			return lookupErr(err, "empleado %s no encontrado", req.EmpleadoID)
		}
		if !emp.Activo {
			return validationf("el empleado %q está inactivo", emp.NombreCompleto)
		}

		// Guard: no duplicate open turno per caja
		if _, err := tx.Turnos.FindAbiertoPorCaja(ctx, caja.ID); err == nil {
			return validationf("la caja %q ya tiene un turno abierto", caja.Nombre)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now()
		turno = &model.Turno{
			CajaID:     &caja.ID,
			EmpleadoID: &emp.ID,
			Estado:     model.TurnoAbierto,
			Inicio:     &now,
		}
		if err := tx.Turnos.Create(ctx, turno); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return validationf("la caja %q ya tiene un turno abierto", caja.Nombre)
			}
			return err
		}

		apertura = &model.Apertura{
			TurnoID:       &turno.ID,
			MontoInicial:  req.MontoInicial,
			Observaciones: req.Observaciones,
		}
		return tx.Turnos.CreateApertura(ctx, apertura)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("turno_id", turno.ID.String()).Str("caja_id", req.CajaID.String()).Msg("turno abierto")
	return toTurnoResponse(turno, apertura, decimal.Zero, nil), nil
}

// ── RegistrarPagoProveedor ────────────────────────────────────────────────────
// Cash outflow while the turno is open. Pagos are immutable.

func (s *turnoService) RegistrarPagoProveedor(ctx context.Context, turnoID uuid.UUID, req dto.PagoProveedorRequest) (*dto.PagoProveedorResponse, error) {
	concepto := strings.TrimSpace(req.Concepto)
	if concepto == "" {
		return nil, validationf("el concepto es obligatorio")
	}
	if !req.Valor.IsPositive() {
		return nil, validationf("el valor del pago debe ser mayor a cero")
	}

	var pago *model.PagoProveedor
	err := s.ledger.Transaction(ctx, func(tx *repository.Ledger) error {
		turno, err := tx.Turnos.FindByID(ctx, turnoID)
		if err != nil {
			return lookupErr(err, "turno %s no encontrado", turnoID)
		}
		if turno.Estado != model.TurnoAbierto {
			return invalidStatef("el turno está %s, solo se registran pagos en turnos abiertos", turno.Estado)
		}
		pago = &model.PagoProveedor{
			TurnoID:   &turno.ID,
			Concepto:  concepto,
			Valor:     req.Valor,
			FechaHora: time.Now(),
		}
		return tx.Turnos.CreatePago(ctx, pago)
	})
	if err != nil {
		return nil, err
	}
	resp := toPagoResponse(*pago)
	return &resp, nil
}

func (s *turnoService) ListarPagos(ctx context.Context, turnoID uuid.UUID) ([]dto.PagoProveedorResponse, error) {
	if _, err := s.ledger.Turnos.FindByID(ctx, turnoID); err != nil {
		return nil, lookupErr(err, "turno %s no encontrado", turnoID)
	}
	pagos, err := s.ledger.Turnos.ListPagos(ctx, turnoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PagoProveedorResponse, 0, len(pagos))
	for _, p := range pagos {
		out = append(out, toPagoResponse(p))
	}
	return out, nil
}

// ── AnotarCierreApertura ──────────────────────────────────────────────────────
// The closing note is the only mutable field of an Apertura.

func (s *turnoService) AnotarCierreApertura(ctx context.Context, turnoID uuid.UUID, req dto.NotaAperturaRequest) error {
	nota := strings.TrimSpace(req.Nota)
	if nota == "" {
		return validationf("la nota es obligatoria")
	}
	n, err := s.ledger.Turnos.AnotarApertura(ctx, turnoID, nota)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFoundf("apertura del turno %s no encontrada", turnoID)
	}
	return nil
}

// ── ObtenerTurno ──────────────────────────────────────────────────────────────

func (s *turnoService) ObtenerTurno(ctx context.Context, turnoID uuid.UUID) (*dto.TurnoResponse, error) {
	turno, err := s.ledger.Turnos.FindByID(ctx, turnoID)
	if err != nil {
		return nil, lookupErr(err, "turno %s no encontrado", turnoID)
	}
	return s.buildReporte(ctx, turno)
}

func (s *turnoService) TurnoAbierto(ctx context.Context, cajaID uuid.UUID) (*dto.TurnoResponse, error) {
	turno, err := s.ledger.Turnos.FindAbiertoPorCaja(ctx, cajaID)
	if err != nil {
		return nil, lookupErr(err, "la caja %s no tiene turno abierto", cajaID)
	}
	return s.buildReporte(ctx, turno)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *turnoService) buildReporte(ctx context.Context, turno *model.Turno) (*dto.TurnoResponse, error) {
	var apertura *model.Apertura
	if a, err := s.ledger.Turnos.FindApertura(ctx, turno.ID); err == nil {
		apertura = a
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pagos, err := s.ledger.Turnos.ListPagos(ctx, turno.ID)
	if err != nil {
		return nil, err
	}

	var arqueo *dto.ArqueoResponse
	if a, err := s.ledger.Arqueos.FindByTurno(ctx, turno.ID); err == nil {
		arqueo = toArqueoResponse(a, s.tolerancia.Valor(ctx, s.ledger.Parametros))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return toTurnoResponse(turno, apertura, sumarPagos(pagos), arqueo), nil
}

func sumarPagos(pagos []model.PagoProveedor) decimal.Decimal {
	total := decimal.Zero
	for _, p := range pagos {
		total = total.Add(p.Valor)
	}
	return total
}

// lookupErr maps a missing row to ErrNotFound and passes anything else through.
func lookupErr(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundf(format, args...)
	}
	return err
}

func toTurnoResponse(t *model.Turno, a *model.Apertura, totalPagos decimal.Decimal, arqueo *dto.ArqueoResponse) *dto.TurnoResponse {
	resp := &dto.TurnoResponse{
		ID:                    t.ID.String(),
		CajaID:                t.CajaID,
		EmpleadoID:            t.EmpleadoID,
		Estado:                t.Estado,
		Inicio:                t.Inicio,
		Fin:                   t.Fin,
		TotalPagosProveedores: totalPagos,
		Arqueo:                arqueo,
	}
	if a != nil {
		resp.Apertura = &dto.AperturaResponse{
			ID:            a.ID.String(),
			MontoInicial:  a.MontoInicial,
			Cerrada:       a.Cerrada,
			Observaciones: a.Observaciones,
		}
	}
	return resp
}

func toPagoResponse(p model.PagoProveedor) dto.PagoProveedorResponse {
	resp := dto.PagoProveedorResponse{
		ID:        p.ID.String(),
		Concepto:  p.Concepto,
		Valor:     p.Valor,
		FechaHora: p.FechaHora,
	}
	if p.TurnoID != nil {
		resp.TurnoID = p.TurnoID.String()
	}
	return resp
}
