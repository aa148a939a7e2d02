package service

import (
	"context"
	"errors"
	"testing"

	"catu/internal/dto"
	"catu/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abrir(t *testing.T, f *fixture, inicial int64) uuid.UUID {
	t.Helper()
	turno, err := f.turnos().AbrirTurno(context.Background(), dto.AbrirTurnoRequest{
		CajaID:       f.caja.ID,
		EmpleadoID:   f.empleado.ID,
		MontoInicial: decimal.NewFromInt(inicial),
	})
	require.NoError(t, err)
	return uuid.MustParse(turno.ID)
}

func TestArqueoCuadrado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	turnoID := abrir(t, f, 100)
	_, err := f.turnos().RegistrarPagoProveedor(ctx, turnoID, dto.PagoProveedorRequest{Concepto: "Hielo", Valor: decimal.NewFromInt(20)})
	require.NoError(t, err)

	actividad := decimal.NewFromInt(50)
	resp, err := f.arqueos(nil).Arqueo(ctx, turnoID, dto.ArqueoRequest{MontoContado: decimal.NewFromInt(130), ActividadNeta: &actividad})
	require.NoError(t, err)

	assert.True(t, resp.MontoEsperado.Equal(decimal.NewFromInt(130)))
	assert.True(t, resp.TotalPagosProveedores.Equal(decimal.NewFromInt(20)))
	assert.True(t, resp.Diferencia.IsZero())
	assert.True(t, resp.MontoFinal.Equal(resp.MontoContado))
	assert.Equal(t, model.ResultadoCuadrado, resp.Resultado.Tipo)

	reporte, err := f.turnos().ObtenerTurno(ctx, turnoID)
	require.NoError(t, err)
	assert.Equal(t, model.TurnoCerrado, reporte.Estado)
	assert.NotNil(t, reporte.Fin)
	assert.True(t, reporte.Apertura.Cerrada)
	require.NotNil(t, reporte.Arqueo)
	assert.Equal(t, resp.ID, reporte.Arqueo.ID)
}

func TestArqueoDiferenciaBajoToleranciaNoSeRedondea(t *testing.T) {
	f := newFixture(t)
	turnoID := abrir(t, f, 100)

	actividad := decimal.RequireFromString("0.005")
	resp, err := f.arqueos(nil).Arqueo(context.Background(), turnoID, dto.ArqueoRequest{MontoContado: decimal.NewFromInt(100), ActividadNeta: &actividad})
	require.NoError(t, err)

	// |-0.005| < 0.01: balanced, but recorded as computed.
	assert.Equal(t, model.ResultadoCuadrado, resp.Resultado.Tipo)
	assert.True(t, resp.Diferencia.Equal(decimal.RequireFromString("-0.005")))
}

func TestArqueoFaltante(t *testing.T) {
	f := newFixture(t)
	turnoID := abrir(t, f, 100)

	resp, err := f.arqueos(nil).Arqueo(context.Background(), turnoID, dto.ArqueoRequest{MontoContado: decimal.NewFromInt(90)})
	require.NoError(t, err)
	assert.Equal(t, model.ResultadoFaltante, resp.Resultado.Tipo)
	assert.True(t, resp.Resultado.Monto.Equal(decimal.NewFromInt(10)))
	assert.True(t, resp.Diferencia.Equal(decimal.NewFromInt(-10)))
}

func TestArqueoDosVecesEsDuplicado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	turnoID := abrir(t, f, 100)

	_, err := f.arqueos(nil).Arqueo(ctx, turnoID, dto.ArqueoRequest{MontoContado: decimal.NewFromInt(100)})
	require.NoError(t, err)
	_, err = f.arqueos(nil).Arqueo(ctx, turnoID, dto.ArqueoRequest{MontoContado: decimal.NewFromInt(100)})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestArqueoRechazos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.arqueos(nil).Arqueo(ctx, uuid.New(), dto.ArqueoRequest{MontoContado: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrNotFound)

	turnoID := abrir(t, f, 100)
	_, err = f.arqueos(nil).Arqueo(ctx, turnoID, dto.ArqueoRequest{MontoContado: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrValidation)

	// Turno without estado (legacy row) cannot be reconciled.
	legacy := &model.Turno{CajaID: &f.principal.ID, EmpleadoID: &f.empleado.ID}
	require.NoError(t, f.ledger.Turnos.Create(ctx, legacy))
	_, err = f.arqueos(nil).Arqueo(ctx, legacy.ID, dto.ArqueoRequest{MontoContado: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestArqueoActividadDelProveedor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	prov := &fakeActividad{valor: decimal.NewFromInt(50)}
	turnoID := abrir(t, f, 100)
	resp, err := f.arqueos(prov).Arqueo(ctx, turnoID, dto.ArqueoRequest{MontoContado: decimal.NewFromInt(150)})
	require.NoError(t, err)
	assert.Equal(t, 1, prov.calls)
	assert.True(t, resp.ActividadNeta.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, model.ResultadoCuadrado, resp.Resultado.Tipo)

	// Explicit value wins over the provider.
	f2 := newFixture(t)
	explicita := decimal.NewFromInt(10)
	turnoID = abrir(t, f2, 100)
	resp, err = f2.arqueos(prov).Arqueo(ctx, turnoID, dto.ArqueoRequest{MontoContado: decimal.NewFromInt(110), ActividadNeta: &explicita})
	require.NoError(t, err)
	assert.Equal(t, 1, prov.calls)
	assert.True(t, resp.ActividadNeta.Equal(explicita))

	// Provider failure degrades to zero.
	f3 := newFixture(t)
	caido := &fakeActividad{err: errors.New("circuit breaker is open")}
	turnoID = abrir(t, f3, 100)
	resp, err = f3.arqueos(caido).Arqueo(ctx, turnoID, dto.ArqueoRequest{MontoContado: decimal.NewFromInt(100)})
	require.NoError(t, err)
	assert.True(t, resp.ActividadNeta.IsZero())
	assert.True(t, resp.MontoEsperado.Equal(decimal.NewFromInt(100)))
}
