package worker

// aviso_worker.go
// Processes alert emails from QueueAvisos via SMTP.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"catu/internal/dto"

	"github.com/rs/zerolog/log"
)

// AvisoJobPayload is the job envelope sent to QueueAvisos.
type AvisoJobPayload struct {
	Para    []string `json:"para"`
	Asunto  string   `json:"asunto"`
	Cuerpo  string   `json:"cuerpo"`
	Adjunto string   `json:"adjunto,omitempty"`
}

// Mailer sends one email. Implemented by infra.Mailer.
type Mailer interface {
	Enviar(to []string, subject, body, adjunto string) error
}

type AvisoWorker struct {
	mailer Mailer
}

func NewAvisoWorker(mailer Mailer) *AvisoWorker {
	return &AvisoWorker{mailer: mailer}
}

func (w *AvisoWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload AvisoJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Permanent(fmt.Errorf("aviso_worker: invalid payload: %w", err))
	}
	if len(payload.Para) == 0 {
		log.Warn().Str("asunto", payload.Asunto).Msg("aviso_worker: sin destinatarios, skipping")
		return nil
	}
	if err := w.mailer.Enviar(payload.Para, payload.Asunto, payload.Cuerpo, payload.Adjunto); err != nil {
		return fmt.Errorf("aviso_worker: send: %w", err)
	}
	log.Info().Strs("para", payload.Para).Str("asunto", payload.Asunto).Msg("aviso_worker: aviso enviado")
	return nil
}

// describirTraslado renders the plain-text body shared by every alert.
func describirTraslado(v dto.TrasladoVista) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Traslado %s\n", v.ID)
	fmt.Fprintf(&b, "Estado: %s\n", v.Estado)
	if v.CajaOrigen != nil {
		fmt.Fprintf(&b, "Origen: %s\n", v.CajaOrigen.Nombre)
	}
	if v.CajaDestino != nil {
		fmt.Fprintf(&b, "Destino: %s\n", v.CajaDestino.Nombre)
	}
	if v.EmpleadoEnvia != nil {
		fmt.Fprintf(&b, "Envía: %s\n", v.EmpleadoEnvia.NombreCompleto)
	}
	fmt.Fprintf(&b, "Monto enviado: $%s\n", v.Monto.StringFixed(2))
	if v.DespachadoEn != nil {
		fmt.Fprintf(&b, "Despachado: %s\n", v.DespachadoEn.Format("02/01/2006 15:04"))
	}
	if r := v.Recepcion; r != nil {
		if r.EmpleadoRecibe != nil {
			fmt.Fprintf(&b, "Recibe: %s\n", r.EmpleadoRecibe.NombreCompleto)
		}
		fmt.Fprintf(&b, "Monto recibido: $%s\n", r.MontoRecibido.StringFixed(2))
		fmt.Fprintf(&b, "Diferencia: $%s\n", r.Diferencia.StringFixed(2))
		if r.Comentario != nil {
			fmt.Fprintf(&b, "Comentario: %s\n", *r.Comentario)
		}
	}
	return b.String()
}
