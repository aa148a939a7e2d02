package worker

// vigilancia_cron.go
// Background goroutine that reminds treasury about traslados stuck
// en_transito. It never changes their state: a traslado in transit stays
// there until someone receives it.

import (
	"context"
	"fmt"
	"time"

	"catu/internal/dto"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const vigilanciaKeyPrefix = "vigilancia:avisado:"

// TransitoSource lists traslados dispatched before a given time and still
// unreceived.
type TransitoSource interface {
	EnTransitoDesde(ctx context.Context, limite time.Time) ([]dto.TrasladoVista, error)
}

// VigilanciaConfig holds all dependencies for the watch goroutine.
type VigilanciaConfig struct {
	Traslados     TransitoSource
	Avisos        AvisoEnqueuer
	RDB           *redis.Client
	Intervalo     time.Duration // tick
	Umbral        time.Duration // age that triggers a reminder; also the re-alert period
	Destinatarios []string
}

// StartVigilanciaCron ticks every cfg.Intervalo until ctx is done.
func StartVigilanciaCron(ctx context.Context, cfg VigilanciaConfig) {
	if len(cfg.Destinatarios) == 0 || cfg.Intervalo <= 0 {
		log.Info().Msg("vigilancia_cron: disabled (sin destinatarios)")
		return
	}
	go func() {
		ticker := time.NewTicker(cfg.Intervalo)
		defer ticker.Stop()

		log.Info().Dur("intervalo", cfg.Intervalo).Dur("umbral", cfg.Umbral).Msg("vigilancia_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("vigilancia_cron: shutting down")
				return
			case now := <-ticker.C:
				if _, err := RevisarTransito(ctx, cfg, now); err != nil {
					log.Error().Err(err).Msg("vigilancia_cron: failed to list traslados en transito")
				}
			}
		}
	}()
}

// RevisarTransito queues one reminder per stale traslado, at most once per
// Umbral per traslado. Returns the number of reminders queued.
func RevisarTransito(ctx context.Context, cfg VigilanciaConfig, now time.Time) (int, error) {
	traslados, err := cfg.Traslados.EnTransitoDesde(ctx, now.Add(-cfg.Umbral))
	if err != nil {
		return 0, err
	}

	enviados := 0
	for _, v := range traslados {
		// SETNX dedupes reminders across ticks and across instances.
		ok, err := cfg.RDB.SetNX(ctx, vigilanciaKeyPrefix+v.ID.String(), now.Unix(), cfg.Umbral).Result()
		if err != nil {
			log.Warn().Err(err).Str("traslado_id", v.ID.String()).Msg("vigilancia_cron: dedupe failed")
			continue
		}
		if !ok {
			continue
		}

		demora := "-"
		if v.DespachadoEn != nil {
			demora = now.Sub(*v.DespachadoEn).Truncate(time.Minute).String()
		}
		err = cfg.Avisos.EnqueueAviso(ctx, AvisoJobPayload{
			Para:   cfg.Destinatarios,
			Asunto: fmt.Sprintf("Traslado en tránsito hace %s", demora),
			Cuerpo: describirTraslado(v),
		})
		if err != nil {
			log.Error().Err(err).Str("traslado_id", v.ID.String()).Msg("vigilancia_cron: enqueue failed")
			continue
		}
		enviados++
	}
	if enviados > 0 {
		log.Info().Int("count", enviados).Msg("vigilancia_cron: recordatorios encolados")
	}
	return enviados, nil
}
