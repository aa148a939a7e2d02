//go:build integration

package router

// Postgres + Redis end-to-end run of the custody flow, with the schema
// applied from migrations/.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"context"
	"testing"
	"time"

	"catu/internal/infra"
	"catu/internal/model"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestCustodiaFlowPostgres(t *testing.T) {
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:15-alpine",
		tcPostgres.WithDatabase("catu_test"),
		tcPostgres.WithUsername("catu"),
		tcPostgres.WithPassword("catu"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := infra.NewDatabase(infra.DriverPostgres, pgURL)
	require.NoError(t, err)
	require.NoError(t, infra.PrepareSchema(db, infra.DriverPostgres, pgURL, "../../migrations"))

	rdb, err := infra.NewRedis(ctx, rdURL)
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })

	caja := &model.Caja{Nombre: "Caja Barra", Tipo: model.TipoCajaOrdinaria, Activa: true}
	principal := &model.Caja{Nombre: "Tesorería", Tipo: model.TipoCajaPrincipal, Activa: true}
	emp := &model.Empleado{NombreCompleto: "Lucía Gómez", Activo: true}
	rec := &model.Empleado{NombreCompleto: "Martín Ríos", Activo: true}
	for _, v := range []any{caja, principal, emp, rec} {
		require.NoError(t, db.WithContext(ctx).Create(v).Error)
	}

	srv := newServer(t, db, rdb)
	custodiaFlow(t, srv, caja.ID.String(), emp.ID.String(), rec.ID.String())
}
