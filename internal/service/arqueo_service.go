package service

import (
	"context"
	"errors"
	"time"

	"catu/internal/dto"
	"catu/internal/model"
	"catu/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ActividadProvider supplies the net sales activity of a turno.
// Implemented by infra.ActividadClient.
type ActividadProvider interface {
	ActividadNeta(ctx context.Context, turnoID uuid.UUID) (decimal.Decimal, error)
}

type ArqueoService interface {
	Arqueo(ctx context.Context, turnoID uuid.UUID, req dto.ArqueoRequest) (*dto.ArqueoResponse, error)
}

type arqueoService struct {
	ledger     *repository.Ledger
	actividad  ActividadProvider
	tolerancia Tolerancia
	vistas     *VistaCache
}

// NewArqueoService: actividad may be nil (no provider configured).
func NewArqueoService(ledger *repository.Ledger, actividad ActividadProvider, tolerancia Tolerancia, vistas *VistaCache) ArqueoService {
	return &arqueoService{ledger: ledger, actividad: actividad, tolerancia: tolerancia, vistas: vistas}
}

// ── Arqueo ────────────────────────────────────────────────────────────────────
//   totalPagos = Σ pagos del turno
//   esperado   = apertura.monto_inicial + actividadNeta - totalPagos
//   diferencia = contado - esperado   (positive = sobrante)
//   final      = contado
// Creates the arqueo, closes the apertura and the turno. Once per turno.

func (s *arqueoService) Arqueo(ctx context.Context, turnoID uuid.UUID, req dto.ArqueoRequest) (*dto.ArqueoResponse, error) {
	if req.MontoContado.IsNegative() {
		return nil, validationf("el monto contado no puede ser negativo")
	}

	// Resolved before the transaction: no network calls while holding it.
	actividad := s.actividadNeta(ctx, turnoID, req.ActividadNeta)

	var arqueo *model.Arqueo
	var tolerancia decimal.Decimal
	err := s.ledger.Transaction(ctx, func(tx *repository.Ledger) error {
		if _, err := tx.Arqueos.FindByTurno(ctx, turnoID); err == nil {
			return duplicatef("el turno %s ya tiene arqueo", turnoID)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		turno, err := tx.Turnos.FindByID(ctx, turnoID)
		if err != nil {
			return lookupErr(err, "turno %s no encontrado", turnoID)
		}
		if turno.Estado != model.TurnoAbierto {
			return invalidStatef("el turno está %s, solo se arquean turnos abiertos", turno.Estado)
		}
		apertura, err := tx.Turnos.FindApertura(ctx, turnoID)
		if err != nil {
			return lookupErr(err, "apertura del turno %s no encontrada", turnoID)
		}

		pagos, err := tx.Turnos.ListPagos(ctx, turnoID)
		if err != nil {
			return err
		}
		totalPagos := sumarPagos(pagos)
		esperado := apertura.MontoInicial.Add(actividad).Sub(totalPagos)

		arqueo = &model.Arqueo{
			TurnoID:               &turno.ID,
			MontoContado:          req.MontoContado,
			ActividadNeta:         actividad,
			MontoEsperado:         esperado,
			MontoFinal:            req.MontoContado,
			Diferencia:            req.MontoContado.Sub(esperado),
			TotalPagosProveedores: totalPagos,
			Comentario:            req.Comentario,
		}
		if err := tx.Arqueos.Create(ctx, arqueo); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return duplicatef("el turno %s ya tiene arqueo", turnoID)
			}
			return err
		}
		if err := tx.Turnos.MarcarAperturaCerrada(ctx, turnoID); err != nil {
			return err
		}

		// closeShift: only reachable from here.
		n, err := tx.Turnos.Cerrar(ctx, turnoID, time.Now())
		if err != nil {
			return err
		}
		if n == 0 {
			return invalidStatef("el turno %s dejó de estar abierto", turnoID)
		}

		tolerancia = s.tolerancia.Valor(ctx, tx.Parametros)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.vistas.Invalidar(ctx)
	resp := toArqueoResponse(arqueo, tolerancia)
	log.Info().
		Str("turno_id", turnoID.String()).
		Str("diferencia", arqueo.Diferencia.String()).
		Str("resultado", string(resp.Resultado.Tipo)).
		Msg("arqueo registrado")
	return resp, nil
}

// actividadNeta: explicit value > provider > zero.
func (s *arqueoService) actividadNeta(ctx context.Context, turnoID uuid.UUID, explicita *decimal.Decimal) decimal.Decimal {
	if explicita != nil {
		return *explicita
	}
	if s.actividad == nil {
		return decimal.Zero
	}
	v, err := s.actividad.ActividadNeta(ctx, turnoID)
	if err != nil {
		log.Warn().Err(err).Str("turno_id", turnoID.String()).Msg("actividad neta no disponible, se asume cero")
		return decimal.Zero
	}
	return v
}

func toArqueoResponse(a *model.Arqueo, tolerancia decimal.Decimal) *dto.ArqueoResponse {
	resp := &dto.ArqueoResponse{
		ID:                    a.ID.String(),
		MontoContado:          a.MontoContado,
		ActividadNeta:         a.ActividadNeta,
		TotalPagosProveedores: a.TotalPagosProveedores,
		MontoEsperado:         a.MontoEsperado,
		MontoFinal:            a.MontoFinal,
		Diferencia:            a.Diferencia,
		Resultado:             model.Clasificar(a.Diferencia, tolerancia),
		Comentario:            a.Comentario,
		CreatedAt:             a.CreatedAt,
	}
	if a.TurnoID != nil {
		resp.TurnoID = a.TurnoID.String()
	}
	return resp
}
