package infra

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"catu/internal/config"
	"catu/internal/dto"
	"catu/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerTripsOpen(t *testing.T) {
	cb := NewCircuitBreaker("test", CircuitBreakerConfig{FailureThreshold: 2, SuccessThreshold: 1, OpenTimeout: time.Minute})
	boom := errors.New("boom")

	assert.ErrorIs(t, cb.Execute(func() error { return boom }), boom)
	assert.False(t, cb.Open())
	assert.ErrorIs(t, cb.Execute(func() error { return boom }), boom)
	assert.True(t, cb.Open())
	assert.Equal(t, "open", cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestActividadClient(t *testing.T) {
	turnoID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != fmt.Sprintf("/turnos/%s/actividad", turnoID) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"turno_id":%q,"total_neto":"1250.50"}`, turnoID)
	}))
	defer srv.Close()

	c := NewActividadClient(srv.URL, NewCircuitBreaker("actividad", DefaultCBConfig()))

	v, err := c.ActividadNeta(context.Background(), turnoID)
	require.NoError(t, err)
	assert.Equal(t, "1250.5", v.String())

	_, err = c.ActividadNeta(context.Background(), uuid.New())
	assert.ErrorContains(t, err, "provider returned 404")
}

func TestGenerateConstanciaPDF(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "constancias")
	comentario := "faltan $5 en billetes de baja denominación"
	v := dto.TrasladoVista{
		ID:            uuid.New(),
		Monto:         decimal.NewFromInt(130),
		Estado:        model.TrasladoObservado,
		FechaHora:     time.Now(),
		CajaOrigen:    &dto.CajaRef{Nombre: "Caja Barra"},
		EmpleadoEnvia: &dto.EmpleadoRef{NombreCompleto: "Lucía Gómez"},
		Recepcion: &dto.RecepcionRef{
			MontoRecibido: decimal.NewFromInt(125),
			Diferencia:    decimal.NewFromInt(-5),
			FechaHora:     time.Now(),
			Comentario:    &comentario,
		},
	}

	path, err := GenerateConstanciaPDF(v, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "constancia_"+v.ID.String()+".pdf"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(b[:4]))
}

func TestNewDatabaseSQLite(t *testing.T) {
	db, err := NewDatabase(DriverSQLite, "file::memory:")
	require.NoError(t, err)
	require.NoError(t, PrepareSchema(db, DriverSQLite, "", ""))

	assert.True(t, db.Migrator().HasTable(&model.Traslado{}))
	assert.True(t, db.Migrator().HasTable(&model.Recepcion{}))

	_, err = NewDatabase("mysql", "")
	assert.Error(t, err)
}

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := NewRedis(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	defer rdb.Close()
	assert.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())

	_, err = NewRedis(context.Background(), "not-a-url")
	assert.Error(t, err)
}

func TestMailerSinHost(t *testing.T) {
	m := NewMailer(&config.Config{SMTPPort: 587})
	err := m.Enviar([]string{"a@catu.local"}, "asunto", "cuerpo", "")
	assert.ErrorContains(t, err, "SMTP_HOST")
}
