package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransicionesTraslado(t *testing.T) {
	cases := []struct {
		from, to EstadoTraslado
		ok       bool
	}{
		{TrasladoPendiente, TrasladoEnTransito, true},
		{TrasladoEnTransito, TrasladoRecibido, true},
		{TrasladoEnTransito, TrasladoObservado, true},
		{TrasladoPendiente, TrasladoRecibido, false},
		{TrasladoPendiente, TrasladoObservado, false},
		{TrasladoEnTransito, TrasladoPendiente, false},
		{TrasladoRecibido, TrasladoObservado, false},
		{TrasladoObservado, TrasladoRecibido, false},
		{TrasladoRecibido, TrasladoEnTransito, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.PuedePasarA(tc.to), "%s -> %s", tc.from, tc.to)
	}
	assert.True(t, TrasladoRecibido.Terminal())
	assert.True(t, TrasladoObservado.Terminal())
	assert.False(t, TrasladoEnTransito.Terminal())
}

func TestEstadoTrasladoScanRechazaDesconocidos(t *testing.T) {
	var e EstadoTraslado
	require.NoError(t, e.Scan([]byte("en_transito")))
	assert.Equal(t, TrasladoEnTransito, e)

	assert.Error(t, e.Scan("pending"))
	assert.Error(t, e.Scan(42))

	_, err := EstadoTraslado{}.Value()
	assert.Error(t, err)
}

func TestEstadoTurnoNullEsSinIniciar(t *testing.T) {
	e := TurnoAbierto
	require.NoError(t, e.Scan(nil))
	assert.Equal(t, TurnoSinIniciar, e)

	v, err := TurnoSinIniciar.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = TurnoCerrado.Value()
	require.NoError(t, err)
	assert.Equal(t, "cerrado", v)

	assert.Error(t, e.Scan("cancelado"))
}

func TestEstadosJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		T EstadoTurno    `json:"t"`
		R EstadoTraslado `json:"r"`
	}{TurnoAbierto, TrasladoObservado})
	require.NoError(t, err)
	assert.JSONEq(t, `{"t":"abierto","r":"observado"}`, string(b))

	var out struct {
		R EstadoTraslado `json:"r"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"r":"cancelado"}`), &out))
}

func TestClasificar(t *testing.T) {
	tol := ToleranciaPorDefecto

	r := Clasificar(decimal.Zero, tol)
	assert.Equal(t, ResultadoCuadrado, r.Tipo)

	r = Clasificar(decimal.RequireFromString("-0.005"), tol)
	assert.True(t, r.Cuadrado())
	assert.Equal(t, "-0.005", r.Diferencia.String())

	r = Clasificar(decimal.RequireFromString("-5.00"), tol)
	assert.Equal(t, ResultadoFaltante, r.Tipo)
	assert.True(t, r.Monto.Equal(decimal.NewFromInt(5)))

	r = Clasificar(decimal.RequireFromString("0.01"), tol)
	assert.Equal(t, ResultadoSobrante, r.Tipo)
	assert.True(t, r.Monto.Equal(decimal.RequireFromString("0.01")))
}
