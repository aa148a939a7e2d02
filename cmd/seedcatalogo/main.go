// cmd/seedcatalogo/main.go: Crea/actualiza cajas, empleados y parámetros de demo.
// Uso: go run ./cmd/seedcatalogo
package main

import (
	"context"
	"os"
	"time"

	"catu/internal/config"
	"catu/internal/infra"
	"catu/internal/model"
	"catu/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// seedNS keeps seeded IDs stable across runs so that upserts stay idempotent.
var seedNS = uuid.MustParse("6f1c5a52-1d0e-4b7e-9a43-3c2f0b8d9e11")

func seedID(name string) uuid.UUID { return uuid.NewSHA1(seedNS, []byte(name)) }

func ptr(s string) *string { return &s }

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := infra.PrepareSchema(db, cfg.DatabaseDriver, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to prepare schema")
	}

	cajas := []model.Caja{
		{ID: seedID("caja:tesoreria"), Nombre: "Tesorería", Tipo: model.TipoCajaPrincipal, Activa: true, Ubicacion: ptr("Oficina")},
		{ID: seedID("caja:barra"), Nombre: "Caja Barra", Tipo: model.TipoCajaOrdinaria, Activa: true, Ubicacion: ptr("Planta baja")},
		{ID: seedID("caja:salon"), Nombre: "Caja Salón", Tipo: model.TipoCajaOrdinaria, Activa: true, Ubicacion: ptr("Primer piso")},
	}
	empleados := []model.Empleado{
		{ID: seedID("empleado:cajero"), NombreCompleto: "Cajero Demo", Cargo: ptr("Cajero"), Activo: true},
		{ID: seedID("empleado:tesorero"), NombreCompleto: "Tesorero Demo", Cargo: ptr("Tesorero"), Activo: true},
	}

	ctx := context.Background()
	err = repository.NewLedger(db).Transaction(ctx, func(tx *repository.Ledger) error {
		for i := range cajas {
			if err := tx.Cajas.Upsert(ctx, &cajas[i]); err != nil {
				return err
			}
			log.Info().Str("id", cajas[i].ID.String()).Str("nombre", cajas[i].Nombre).Msg("caja")
		}
		for i := range empleados {
			if err := tx.Empleados.Upsert(ctx, &empleados[i]); err != nil {
				return err
			}
			log.Info().Str("id", empleados[i].ID.String()).Str("nombre", empleados[i].NombreCompleto).Msg("empleado")
		}
		return tx.Parametros.Upsert(ctx, &model.Parametro{
			Clave:       model.ClaveToleranciaDiferencia,
			Valor:       cfg.ToleranciaDiferencia,
			Descripcion: ptr("Diferencia máxima (en valor absoluto) considerada cuadrada"),
		})
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Msg("catálogo sembrado")
}
