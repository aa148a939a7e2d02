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
	"gorm.io/gorm"
)

// Notificador is told about every committed recepcion. Implemented by
// worker.Dispatcher; failures are logged and never undo the recepcion.
type Notificador interface {
	RecepcionRegistrada(ctx context.Context, trasladoID uuid.UUID) error
}

type RecepcionService interface {
	Recibir(ctx context.Context, trasladoID uuid.UUID, req dto.RecibirTrasladoRequest) (*dto.RecepcionResponse, error)
}

type recepcionService struct {
	ledger      *repository.Ledger
	tolerancia  Tolerancia
	vistas      *VistaCache
	notificador Notificador
}

// NewRecepcionService: notificador may be nil.
func NewRecepcionService(ledger *repository.Ledger, tolerancia Tolerancia, vistas *VistaCache, notificador Notificador) RecepcionService {
	return &recepcionService{ledger: ledger, tolerancia: tolerancia, vistas: vistas, notificador: notificador}
}

// ── Recibir ───────────────────────────────────────────────────────────────────
//   diferencia = recibido - traslado.monto
//   |diferencia| <  tolerancia → recibido
//   |diferencia| >= tolerancia → observado, comentario obligatorio
// Exactly one recepcion per traslado.

func (s *recepcionService) Recibir(ctx context.Context, trasladoID uuid.UUID, req dto.RecibirTrasladoRequest) (*dto.RecepcionResponse, error) {
	if req.EmpleadoRecibeID == uuid.Nil {
		return nil, validationf("el empleado que recibe es obligatorio")
	}
	if !req.MontoRecibido.IsPositive() {
		return nil, validationf("el monto recibido debe ser mayor a cero")
	}
	comentario := strings.TrimSpace(req.Comentario)

	var (
		recepcion *model.Recepcion
		traslado  *model.Traslado
		resultado model.Resultado
		estado    model.EstadoTraslado
	)
	err := s.ledger.Transaction(ctx, func(tx *repository.Ledger) error {
		var err error
		traslado, err = tx.Traslados.FindByID(ctx, trasladoID)
		if err != nil {
			return lookupErr(err, "traslado %s no encontrado", trasladoID)
		}
		if _, err := tx.Traslados.FindRecepcion(ctx, trasladoID); err == nil {
			return duplicatef("el traslado %s ya fue recibido", trasladoID)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if traslado.Estado != model.TrasladoEnTransito {
			return invalidStatef("el traslado está %s, solo se reciben traslados en tránsito", traslado.Estado)
		}

		emp, err := tx.Empleados.FindByID(ctx, req.EmpleadoRecibeID)
		if err != nil {
			return lookupErr(err, "empleado %s no encontrado", req.EmpleadoRecibeID)
		}
		if req.TurnoReceptorID != nil {
			if _, err := tx.Turnos.FindByID(ctx, *req.TurnoReceptorID); err != nil {
				return lookupErr(err, "turno receptor %s no encontrado", *req.TurnoReceptorID)
			}
		}

		diferencia := req.MontoRecibido.Sub(traslado.Monto)
		resultado = model.Clasificar(diferencia, s.tolerancia.Valor(ctx, tx.Parametros))
		estado = model.TrasladoRecibido
		if !resultado.Cuadrado() {
			if comentario == "" {
				return validationf("diferencia de %s: el comentario es obligatorio", diferencia.StringFixed(2))
			}
			estado = model.TrasladoObservado
		}

		recepcion = &model.Recepcion{
			TrasladoID:       &traslado.ID,
			EmpleadoRecibeID: &emp.ID,
			TurnoReceptorID:  req.TurnoReceptorID,
			MontoRecibido:    req.MontoRecibido,
			Diferencia:       diferencia,
			FechaHora:        time.Now(),
		}
		if comentario != "" {
			recepcion.Comentario = &comentario
		}
		if err := tx.Traslados.CreateRecepcion(ctx, recepcion); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return duplicatef("el traslado %s ya fue recibido", trasladoID)
			}
			return err
		}

		n, err := tx.Traslados.Transitar(ctx, trasladoID, model.TrasladoEnTransito, estado, nil)
		if err != nil {
			return err
		}
		if n == 0 {
			return invalidStatef("el traslado %s dejó de estar en tránsito", trasladoID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.vistas.Invalidar(ctx)
	log.Info().
		Str("traslado_id", trasladoID.String()).
		Str("estado", estado.String()).
		Str("diferencia", recepcion.Diferencia.String()).
		Msg("traslado recibido")

	if s.notificador != nil {
		if err := s.notificador.RecepcionRegistrada(ctx, trasladoID); err != nil {
			log.Error().Err(err).Str("traslado_id", trasladoID.String()).Msg("recepcion: no se pudo encolar la constancia")
		}
	}

	return &dto.RecepcionResponse{
		ID:               recepcion.ID.String(),
		TrasladoID:       trasladoID.String(),
		EmpleadoRecibeID: req.EmpleadoRecibeID.String(),
		MontoEsperado:    traslado.Monto,
		MontoRecibido:    recepcion.MontoRecibido,
		Diferencia:       recepcion.Diferencia,
		Resultado:        resultado,
		EstadoTraslado:   estado,
		FechaHora:        recepcion.FechaHora,
		Comentario:       recepcion.Comentario,
	}, nil
}
