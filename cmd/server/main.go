package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catu/internal/config"
	"catu/internal/infra"
	"catu/internal/middleware"
	"catu/internal/repository"
	"catu/internal/router"
	"catu/internal/service"
	"catu/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Pretty console output outside production, JSON otherwise
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := infra.NewDatabase(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DatabaseDriver).Msg("failed to open database")
	}
	if err := infra.PrepareSchema(db, cfg.DatabaseDriver, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to prepare schema")
	}

	// Redis is optional: without it there is no view cache and no async jobs.
	rdb, err := infra.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running without cache and workers")
		rdb = nil
	}

	ledger := repository.NewLedger(db)
	tolerancia := service.NewTolerancia(cfg.ToleranciaDiferencia)
	vistas := service.NewVistaCache(rdb, cfg.VistaCacheTTL)

	var (
		actividadCB *infra.CircuitBreaker
		actividad   service.ActividadProvider
	)
	if cfg.ActividadURL != "" {
		actividadCB = infra.NewCircuitBreaker("actividad", infra.DefaultCBConfig())
		actividad = infra.NewActividadClient(cfg.ActividadURL, actividadCB)
	}

	var notificador service.Notificador
	trasladoSvc := service.NewTrasladoService(ledger, vistas)

	if rdb != nil {
		dispatcher := worker.NewDispatcher(rdb)
		notificador = dispatcher

		workerHandlers := &worker.WorkerHandlers{
			Recepcion: worker.NewRecepcionWorker(trasladoSvc, dispatcher, cfg.PDFStoragePath, cfg.AvisoDestinatarios),
			Aviso:     worker.NewAvisoWorker(infra.NewMailer(cfg)),
		}
		worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)

		worker.StartVigilanciaCron(ctx, worker.VigilanciaConfig{
			Traslados:     trasladoSvc,
			Avisos:        dispatcher,
			RDB:           rdb,
			Intervalo:     cfg.VigilanciaIntervalo,
			Umbral:        cfg.TransitoAlerta,
			Destinatarios: cfg.AvisoDestinatarios,
		})
	}

	limiter := middleware.NewRateLimiter(120, time.Minute)
	go limiter.Purge(ctx, 5*time.Minute)

	r := router.New(cfg, router.Deps{
		DB:          db,
		Redis:       rdb,
		ActividadCB: actividadCB,
		RateLimiter: limiter,
		Turnos:      service.NewTurnoService(ledger, tolerancia),
		Arqueos:     service.NewArqueoService(ledger, actividad, tolerancia, vistas),
		Traslados:   trasladoSvc,
		Recepciones: service.NewRecepcionService(ledger, tolerancia, vistas, notificador),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("catu listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	log.Info().Msg("server exited")
}
