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
	"gorm.io/gorm"
)

type TrasladoService interface {
	IniciarTraslado(ctx context.Context, req dto.IniciarTrasladoRequest) (*dto.TrasladoResponse, error)
	Despachar(ctx context.Context, trasladoID uuid.UUID) (*dto.TrasladoResponse, error)

	// Read model
	ListarTraslados(ctx context.Context, filter dto.TrasladoFilter) (*dto.TrasladoListResponse, error)
	ObtenerTraslado(ctx context.Context, trasladoID uuid.UUID) (*dto.TrasladoVista, error)
	PagosDelTraslado(ctx context.Context, trasladoID uuid.UUID) ([]dto.PagoProveedorResponse, error)
	EnTransitoDesde(ctx context.Context, limite time.Time) ([]dto.TrasladoVista, error)
}

type trasladoService struct {
	ledger *repository.Ledger
	vistas *VistaCache
}

func NewTrasladoService(ledger *repository.Ledger, vistas *VistaCache) TrasladoService {
	return &trasladoService{ledger: ledger, vistas: vistas}
}

// ── IniciarTraslado ───────────────────────────────────────────────────────────
// pendiente traslado of arqueo.monto_final from the turno's caja.
// One traslado per arqueo; destination defaults to the principal caja.

func (s *trasladoService) IniciarTraslado(ctx context.Context, req dto.IniciarTrasladoRequest) (*dto.TrasladoResponse, error) {
	var traslado *model.Traslado
	err := s.ledger.Transaction(ctx, func(tx *repository.Ledger) error {
		arqueo, err := tx.Arqueos.FindByID(ctx, req.ArqueoID)
		if err != nil {
			return lookupErr(err, "arqueo %s no encontrado", req.ArqueoID)
		}
		if _, err := tx.Traslados.FindByArqueo(ctx, arqueo.ID); err == nil {
			return validationf("el arqueo %s ya tiene traslado", arqueo.ID)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if arqueo.TurnoID == nil {
			return validationf("el arqueo %s no está asociado a un turno", arqueo.ID)
		}
		turno, err := tx.Turnos.FindByID(ctx, *arqueo.TurnoID)
		if err != nil {
			return lookupErr(err, "turno %s no encontrado", *arqueo.TurnoID)
		}
		if turno.CajaID == nil {
			return validationf("el turno %s no está asociado a una caja", turno.ID)
		}

		destino, err := s.resolverDestino(ctx, tx, req.CajaDestinoID)
		if err != nil {
			return err
		}
		if destino.ID == *turno.CajaID {
			return validationf("la caja destino debe ser distinta de la caja origen")
		}

		enviaID := turno.EmpleadoID
		if req.EmpleadoEnviaID != nil {
			emp, err := tx.Empleados.FindByID(ctx, *req.EmpleadoEnviaID)
			if err != nil {
				return lookupErr(err, "empleado %s no encontrado", *req.EmpleadoEnviaID)
			}
			enviaID = &emp.ID
		}
		if enviaID == nil {
			return validationf("no se pudo determinar el empleado que envía")
		}

		traslado = &model.Traslado{
			ArqueoID:        &arqueo.ID,
			CajaOrigenID:    turno.CajaID,
			CajaDestinoID:   &destino.ID,
			EmpleadoEnviaID: enviaID,
			TurnoID:         &turno.ID,
			Monto:           arqueo.MontoFinal,
			Estado:          model.TrasladoPendiente,
			FechaHora:       time.Now(),
			Observaciones:   req.Observaciones,
		}
		if err := tx.Traslados.Create(ctx, traslado); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return validationf("el arqueo %s ya tiene traslado", arqueo.ID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.vistas.Invalidar(ctx)
	log.Info().Str("traslado_id", traslado.ID.String()).Str("monto", traslado.Monto.String()).Msg("traslado iniciado")
	return toTrasladoResponse(traslado), nil
}

func (s *trasladoService) resolverDestino(ctx context.Context, tx *repository.Ledger, id *uuid.UUID) (*model.Caja, error) {
	if id == nil {
		caja, err := tx.Cajas.FindPrincipal(ctx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validationf("no hay caja principal activa; indique la caja destino")
		}
		return caja, err
	}
	caja, err := tx.Cajas.FindByID(ctx, *id)
	if err != nil {
		return nil, lookupErr(err, "caja %s no encontrada", *id)
	}
	if !caja.Activa {
		return nil, validationf("la caja destino %q está inactiva", caja.Nombre)
	}
	return caja, nil
}

// ── Despachar ─────────────────────────────────────────────────────────────────
// pendiente → en_transito. Content is frozen from here on.

func (s *trasladoService) Despachar(ctx context.Context, trasladoID uuid.UUID) (*dto.TrasladoResponse, error) {
	var traslado *model.Traslado
	err := s.ledger.Transaction(ctx, func(tx *repository.Ledger) error {
		t, err := tx.Traslados.FindByID(ctx, trasladoID)
		if err != nil {
			return lookupErr(err, "traslado %s no encontrado", trasladoID)
		}
		if !t.Estado.PuedePasarA(model.TrasladoEnTransito) {
			return invalidStatef("el traslado está %s, solo se despachan traslados pendientes", t.Estado)
		}

		n, err := tx.Traslados.Transitar(ctx, trasladoID, model.TrasladoPendiente, model.TrasladoEnTransito,
			map[string]interface{}{"despachado_en": time.Now()})
		if err != nil {
			return err
		}
		if n == 0 {
			return invalidStatef("el traslado %s dejó de estar pendiente", trasladoID)
		}

		traslado, err = tx.Traslados.FindByID(ctx, trasladoID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.vistas.Invalidar(ctx)
	log.Info().Str("traslado_id", trasladoID.String()).Msg("traslado despachado")
	return toTrasladoResponse(traslado), nil
}

// ── Read model ────────────────────────────────────────────────────────────────
// Views may be stale; callers re-fetch after a write fails.

func (s *trasladoService) ListarTraslados(ctx context.Context, filter dto.TrasladoFilter) (*dto.TrasladoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if cached, ok := s.vistas.Get(ctx, filter); ok {
		return cached, nil
	}

	traslados, total, err := s.ledger.Traslados.ListVista(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.TrasladoListResponse{
		Data:  make([]dto.TrasladoVista, 0, len(traslados)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range traslados {
		resp.Data = append(resp.Data, NuevaVistaTraslado(&traslados[i]))
	}
	s.vistas.Set(ctx, filter, resp)
	return resp, nil
}

func (s *trasladoService) ObtenerTraslado(ctx context.Context, trasladoID uuid.UUID) (*dto.TrasladoVista, error) {
	t, err := s.ledger.Traslados.FindVista(ctx, trasladoID)
	if err != nil {
		return nil, lookupErr(err, "traslado %s no encontrado", trasladoID)
	}
	v := NuevaVistaTraslado(t)
	return &v, nil
}

// PagosDelTraslado lists the pagos of the turno that produced the traslado.
func (s *trasladoService) PagosDelTraslado(ctx context.Context, trasladoID uuid.UUID) ([]dto.PagoProveedorResponse, error) {
	t, err := s.ledger.Traslados.FindByID(ctx, trasladoID)
	if err != nil {
		return nil, lookupErr(err, "traslado %s no encontrado", trasladoID)
	}
	out := []dto.PagoProveedorResponse{}
	if t.TurnoID == nil {
		return out, nil
	}
	pagos, err := s.ledger.Turnos.ListPagos(ctx, *t.TurnoID)
	if err != nil {
		return nil, err
	}
	for _, p := range pagos {
		out = append(out, toPagoResponse(p))
	}
	return out, nil
}

// EnTransitoDesde lists traslados dispatched before limite and still unreceived.
func (s *trasladoService) EnTransitoDesde(ctx context.Context, limite time.Time) ([]dto.TrasladoVista, error) {
	traslados, err := s.ledger.Traslados.ListEnTransitoAntesDe(ctx, limite)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TrasladoVista, 0, len(traslados))
	for i := range traslados {
		out = append(out, NuevaVistaTraslado(&traslados[i]))
	}
	return out, nil
}

func toTrasladoResponse(t *model.Traslado) *dto.TrasladoResponse {
	return &dto.TrasladoResponse{
		ID:              t.ID.String(),
		ArqueoID:        t.ArqueoID,
		CajaOrigenID:    t.CajaOrigenID,
		CajaDestinoID:   t.CajaDestinoID,
		EmpleadoEnviaID: t.EmpleadoEnviaID,
		TurnoID:         t.TurnoID,
		Monto:           t.Monto,
		Estado:          t.Estado,
		FechaHora:       t.FechaHora,
		DespachadoEn:    t.DespachadoEn,
		Observaciones:   t.Observaciones,
	}
}
