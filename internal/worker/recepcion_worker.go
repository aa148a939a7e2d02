package worker

// recepcion_worker.go
// Processes jobs from QueueRecepciones: renders the constancia PDF of a
// received traslado and, when it was observado, queues an alert with the
// PDF attached.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"catu/internal/dto"
	"catu/internal/infra"
	"catu/internal/model"
	"catu/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RecepcionJobPayload is the job envelope sent to QueueRecepciones.
type RecepcionJobPayload struct {
	TrasladoID string `json:"traslado_id"`
}

// VistaSource loads the joined view of a traslado.
type VistaSource interface {
	ObtenerTraslado(ctx context.Context, trasladoID uuid.UUID) (*dto.TrasladoVista, error)
}

// AvisoEnqueuer queues alert emails.
type AvisoEnqueuer interface {
	EnqueueAviso(ctx context.Context, p AvisoJobPayload) error
}

type RecepcionWorker struct {
	vistas         VistaSource
	avisos         AvisoEnqueuer
	pdfStoragePath string
	destinatarios  []string
}

func NewRecepcionWorker(vistas VistaSource, avisos AvisoEnqueuer, pdfStoragePath string, destinatarios []string) *RecepcionWorker {
	return &RecepcionWorker{vistas: vistas, avisos: avisos, pdfStoragePath: pdfStoragePath, destinatarios: destinatarios}
}

func (w *RecepcionWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload RecepcionJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Permanent(fmt.Errorf("recepcion_worker: invalid payload: %w", err))
	}
	id, err := uuid.Parse(payload.TrasladoID)
	if err != nil {
		return Permanent(fmt.Errorf("recepcion_worker: invalid traslado_id: %w", err))
	}

	v, err := w.vistas.ObtenerTraslado(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return Permanent(err)
		}
		return err
	}
	if v.Recepcion == nil {
		return Permanent(fmt.Errorf("recepcion_worker: traslado %s sin recepcion", id))
	}

	path, err := infra.GenerateConstanciaPDF(*v, w.pdfStoragePath)
	if err != nil {
		return err
	}
	log.Info().Str("traslado_id", id.String()).Str("pdf", path).Msg("recepcion_worker: constancia generada")

	if v.Estado != model.TrasladoObservado || len(w.destinatarios) == 0 {
		return nil
	}
	return w.avisos.EnqueueAviso(ctx, AvisoJobPayload{
		Para:    w.destinatarios,
		Asunto:  fmt.Sprintf("Traslado observado: diferencia $%s", v.Recepcion.Diferencia.StringFixed(2)),
		Cuerpo:  describirTraslado(*v),
		Adjunto: path,
	})
}
