package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catu/internal/config"
	"catu/internal/repository"
	"catu/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// newServer wires the full HTTP shell over db (and rdb when non-nil).
func newServer(t *testing.T, db *gorm.DB, rdb *redis.Client) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ledger := repository.NewLedger(db)
	tol := service.NewTolerancia("0.01")
	var vistas *service.VistaCache
	if rdb != nil {
		vistas = service.NewVistaCache(rdb, 30*time.Second)
	}

	engine := New(&config.Config{Env: "test"}, Deps{
		DB:          db,
		Redis:       rdb,
		Turnos:      service.NewTurnoService(ledger, tol),
		Arqueos:     service.NewArqueoService(ledger, nil, tol, vistas),
		Traslados:   service.NewTrasladoService(ledger, vistas),
		Recepciones: service.NewRecepcionService(ledger, tol, vistas, nil),
	})
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv
}

// custodiaFlow drives open → pago → arqueo → traslado → despacho → recepcion
// through HTTP and asserts every step. Shared by the sqlite and the
// Postgres-backed suites.
func custodiaFlow(t *testing.T, srv *httptest.Server, cajaID, empleadoID, receptorID string) {
	t.Helper()

	// 1. Abrir turno
	resp := do(t, srv, http.MethodPost, "/v1/turnos", jsonBody(t, map[string]any{
		"caja_id":       cajaID,
		"empleado_id":   empleadoID,
		"monto_inicial": "100.00",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var turno map[string]any
	decodeJSON(t, resp, &turno)
	require.Equal(t, "abierto", turno["estado"])
	turnoID := turno["id"].(string)

	// Second open on the same caja is rejected.
	resp = do(t, srv, http.MethodPost, "/v1/turnos", jsonBody(t, map[string]any{
		"caja_id":       cajaID,
		"empleado_id":   receptorID,
		"monto_inicial": "0",
	}))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// 2. Pago a proveedor
	resp = do(t, srv, http.MethodPost, "/v1/turnos/"+turnoID+"/pagos", jsonBody(t, map[string]any{
		"concepto": "Hielo",
		"valor":    "20.00",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// 3. Arqueo: 100 + 50 - 20 = 130
	resp = do(t, srv, http.MethodPost, "/v1/turnos/"+turnoID+"/arqueo", jsonBody(t, map[string]any{
		"monto_contado":  "130.00",
		"actividad_neta": "50.00",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var arqueo struct {
		ID        string `json:"id"`
		Resultado struct {
			Tipo string `json:"tipo"`
		} `json:"resultado"`
	}
	decodeJSON(t, resp, &arqueo)
	require.Equal(t, "cuadrado", arqueo.Resultado.Tipo)

	resp = do(t, srv, http.MethodPost, "/v1/turnos/"+turnoID+"/arqueo", jsonBody(t, map[string]any{"monto_contado": "130.00"}))
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var apiErr map[string]any
	decodeJSON(t, resp, &apiErr)
	require.Equal(t, "duplicado", apiErr["code"])

	// 4. Traslado to the principal caja
	resp = do(t, srv, http.MethodPost, "/v1/traslados", jsonBody(t, map[string]any{"arqueo_id": arqueo.ID}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var traslado map[string]any
	decodeJSON(t, resp, &traslado)
	require.Equal(t, "pendiente", traslado["estado"])
	trasladoID := traslado["id"].(string)

	// Receiving before dispatch is a state error.
	resp = do(t, srv, http.MethodPost, "/v1/traslados/"+trasladoID+"/recepcion", jsonBody(t, map[string]any{
		"empleado_recibe_id": receptorID,
		"monto_recibido":     "130.00",
	}))
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	decodeJSON(t, resp, &apiErr)
	require.Equal(t, "estado_invalido", apiErr["code"])

	// 5. Despachar
	resp = do(t, srv, http.MethodPost, "/v1/traslados/"+trasladoID+"/despachar", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// 6. Recepcion with a shortage needs a comment
	resp = do(t, srv, http.MethodPost, "/v1/traslados/"+trasladoID+"/recepcion", jsonBody(t, map[string]any{
		"empleado_recibe_id": receptorID,
		"monto_recibido":     "125.00",
	}))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, srv, http.MethodPost, "/v1/traslados/"+trasladoID+"/recepcion", jsonBody(t, map[string]any{
		"empleado_recibe_id": receptorID,
		"monto_recibido":     "125.00",
		"comentario":         "faltan 5",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var recepcion map[string]any
	decodeJSON(t, resp, &recepcion)
	require.Equal(t, "observado", recepcion["estado_traslado"])

	// 7. Read model reflects the terminal state
	resp = do(t, srv, http.MethodGet, "/v1/traslados?estado=observado", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var lista struct {
		Total int64 `json:"total"`
		Data  []struct {
			ID        string         `json:"id"`
			Estado    string         `json:"estado"`
			Recepcion map[string]any `json:"recepcion"`
		} `json:"data"`
	}
	decodeJSON(t, resp, &lista)
	require.EqualValues(t, 1, lista.Total)
	require.Equal(t, trasladoID, lista.Data[0].ID)
	require.NotNil(t, lista.Data[0].Recepcion)
}
