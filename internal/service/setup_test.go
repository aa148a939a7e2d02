package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"catu/internal/dto"
	"catu/internal/infra"
	"catu/internal/model"
	"catu/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ledger    *repository.Ledger
	caja      *model.Caja
	principal *model.Caja
	empleado  *model.Empleado
	receptor  *model.Empleado
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := infra.NewDatabase(infra.DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, infra.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	ctx := context.Background()
	f := &fixture{ledger: repository.NewLedger(db)}
	f.caja = &model.Caja{Nombre: "Caja Barra", Tipo: model.TipoCajaOrdinaria, Activa: true}
	f.principal = &model.Caja{Nombre: "Tesorería", Tipo: model.TipoCajaPrincipal, Activa: true}
	f.empleado = &model.Empleado{NombreCompleto: "Lucía Gómez", Activo: true}
	f.receptor = &model.Empleado{NombreCompleto: "Martín Ríos", Activo: true}
	require.NoError(t, f.ledger.Cajas.Create(ctx, f.caja))
	require.NoError(t, f.ledger.Cajas.Create(ctx, f.principal))
	require.NoError(t, f.ledger.Empleados.Create(ctx, f.empleado))
	require.NoError(t, f.ledger.Empleados.Create(ctx, f.receptor))
	return f
}

func (f *fixture) turnos() TurnoService {
	return NewTurnoService(f.ledger, NewTolerancia("0.01"))
}

func (f *fixture) arqueos(p ActividadProvider) ArqueoService {
	return NewArqueoService(f.ledger, p, NewTolerancia("0.01"), nil)
}

func (f *fixture) traslados() TrasladoService {
	return NewTrasladoService(f.ledger, nil)
}

func (f *fixture) recepciones(n Notificador) RecepcionService {
	return NewRecepcionService(f.ledger, NewTolerancia("0.01"), nil, n)
}

// abrirYArquear runs the common path: open with 100, one pago of 20,
// actividad 50, count 130. Returns the turno and arqueo ids.
func (f *fixture) abrirYArquear(t *testing.T) (uuid.UUID, uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	turno, err := f.turnos().AbrirTurno(ctx, dto.AbrirTurnoRequest{
		CajaID:       f.caja.ID,
		EmpleadoID:   f.empleado.ID,
		MontoInicial: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	turnoID := uuid.MustParse(turno.ID)

	_, err = f.turnos().RegistrarPagoProveedor(ctx, turnoID, dto.PagoProveedorRequest{Concepto: "Hielo", Valor: decimal.NewFromInt(20)})
	require.NoError(t, err)

	actividad := decimal.NewFromInt(50)
	arq, err := f.arqueos(nil).Arqueo(ctx, turnoID, dto.ArqueoRequest{MontoContado: decimal.NewFromInt(130), ActividadNeta: &actividad})
	require.NoError(t, err)
	return turnoID, uuid.MustParse(arq.ID)
}

// despachado returns an en_transito traslado of 130 to the principal caja.
func (f *fixture) despachado(t *testing.T) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	_, arqueoID := f.abrirYArquear(t)
	tr, err := f.traslados().IniciarTraslado(ctx, dto.IniciarTrasladoRequest{ArqueoID: arqueoID})
	require.NoError(t, err)
	id := uuid.MustParse(tr.ID)
	_, err = f.traslados().Despachar(ctx, id)
	require.NoError(t, err)
	return id
}

type fakeActividad struct {
	valor decimal.Decimal
	err   error
	calls int
}

func (f *fakeActividad) ActividadNeta(_ context.Context, _ uuid.UUID) (decimal.Decimal, error) {
	f.calls++
	return f.valor, f.err
}

type fakeNotificador struct {
	mu   sync.Mutex
	ids  []uuid.UUID
	fail bool
}

func (f *fakeNotificador) RecepcionRegistrada(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = append(f.ids, id)
	if f.fail {
		return errors.New("redis down")
	}
	return nil
}
