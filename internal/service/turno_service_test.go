package service

import (
	"context"
	"testing"

	"catu/internal/dto"
	"catu/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbrirTurno(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.turnos()

	obs := "fondo en billetes chicos"
	resp, err := svc.AbrirTurno(ctx, dto.AbrirTurnoRequest{
		CajaID:        f.caja.ID,
		EmpleadoID:    f.empleado.ID,
		MontoInicial:  decimal.RequireFromString("100.00"),
		Observaciones: &obs,
	})
	require.NoError(t, err)
	assert.Equal(t, model.TurnoAbierto, resp.Estado)
	assert.NotNil(t, resp.Inicio)
	assert.Nil(t, resp.Fin)
	require.NotNil(t, resp.Apertura)
	assert.False(t, resp.Apertura.Cerrada)
	assert.True(t, resp.Apertura.MontoInicial.Equal(decimal.NewFromInt(100)))

	activo, err := svc.TurnoAbierto(ctx, f.caja.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, activo.ID)
}

func TestAbrirTurnoRechazos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.turnos()

	_, err := svc.AbrirTurno(ctx, dto.AbrirTurnoRequest{CajaID: f.caja.ID, EmpleadoID: f.empleado.ID, MontoInicial: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AbrirTurno(ctx, dto.AbrirTurnoRequest{CajaID: uuid.New(), EmpleadoID: f.empleado.ID})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AbrirTurno(ctx, dto.AbrirTurnoRequest{CajaID: f.caja.ID, EmpleadoID: uuid.New()})
	assert.ErrorIs(t, err, ErrNotFound)

	inactiva := &model.Caja{Nombre: "Caja vieja", Tipo: model.TipoCajaOrdinaria}
	require.NoError(t, f.ledger.Cajas.Create(ctx, inactiva))
	_, err = svc.AbrirTurno(ctx, dto.AbrirTurnoRequest{CajaID: inactiva.ID, EmpleadoID: f.empleado.ID})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AbrirTurno(ctx, dto.AbrirTurnoRequest{CajaID: f.caja.ID, EmpleadoID: f.empleado.ID, MontoInicial: decimal.NewFromInt(10)})
	require.NoError(t, err)
	_, err = svc.AbrirTurno(ctx, dto.AbrirTurnoRequest{CajaID: f.caja.ID, EmpleadoID: f.receptor.ID, MontoInicial: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, ErrValidation, "una caja no puede tener dos turnos abiertos")
}

func TestPagosProveedor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.turnos()

	turno, err := svc.AbrirTurno(ctx, dto.AbrirTurnoRequest{CajaID: f.caja.ID, EmpleadoID: f.empleado.ID, MontoInicial: decimal.NewFromInt(100)})
	require.NoError(t, err)
	id := uuid.MustParse(turno.ID)

	_, err = svc.RegistrarPagoProveedor(ctx, id, dto.PagoProveedorRequest{Concepto: "  ", Valor: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.RegistrarPagoProveedor(ctx, id, dto.PagoProveedorRequest{Concepto: "Pan", Valor: decimal.Zero})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.RegistrarPagoProveedor(ctx, uuid.New(), dto.PagoProveedorRequest{Concepto: "Pan", Valor: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.RegistrarPagoProveedor(ctx, id, dto.PagoProveedorRequest{Concepto: "Pan", Valor: decimal.RequireFromString("12.50")})
	require.NoError(t, err)
	_, err = svc.RegistrarPagoProveedor(ctx, id, dto.PagoProveedorRequest{Concepto: "Hielo", Valor: decimal.RequireFromString("7.50")})
	require.NoError(t, err)

	pagos, err := svc.ListarPagos(ctx, id)
	require.NoError(t, err)
	assert.Len(t, pagos, 2)

	reporte, err := svc.ObtenerTurno(ctx, id)
	require.NoError(t, err)
	assert.True(t, reporte.TotalPagosProveedores.Equal(decimal.NewFromInt(20)))
	assert.Nil(t, reporte.Arqueo)

	actividad := decimal.Zero
	_, err = f.arqueos(nil).Arqueo(ctx, id, dto.ArqueoRequest{MontoContado: decimal.NewFromInt(80), ActividadNeta: &actividad})
	require.NoError(t, err)

	_, err = svc.RegistrarPagoProveedor(ctx, id, dto.PagoProveedorRequest{Concepto: "Tarde", Valor: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAnotarCierreApertura(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.turnos()

	turno, err := svc.AbrirTurno(ctx, dto.AbrirTurnoRequest{CajaID: f.caja.ID, EmpleadoID: f.empleado.ID, MontoInicial: decimal.NewFromInt(50)})
	require.NoError(t, err)
	id := uuid.MustParse(turno.ID)

	assert.ErrorIs(t, svc.AnotarCierreApertura(ctx, id, dto.NotaAperturaRequest{Nota: " "}), ErrValidation)
	assert.ErrorIs(t, svc.AnotarCierreApertura(ctx, uuid.New(), dto.NotaAperturaRequest{Nota: "x"}), ErrNotFound)
	require.NoError(t, svc.AnotarCierreApertura(ctx, id, dto.NotaAperturaRequest{Nota: "sin novedad"}))

	reporte, err := svc.ObtenerTurno(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, reporte.Apertura.Observaciones)
	assert.Equal(t, "sin novedad", *reporte.Apertura.Observaciones)
	assert.True(t, reporte.Apertura.MontoInicial.Equal(decimal.NewFromInt(50)))
}

func TestTurnoAbiertoSinTurno(t *testing.T) {
	f := newFixture(t)
	_, err := f.turnos().TurnoAbierto(context.Background(), f.caja.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
