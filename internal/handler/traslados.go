package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"catu/internal/apierror"
	"catu/internal/dto"
	"catu/internal/model"
	"catu/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TrasladosHandler struct {
	svc       service.TrasladoService
	recepcion service.RecepcionService
}

func NewTrasladosHandler(svc service.TrasladoService, recepcion service.RecepcionService) *TrasladosHandler {
	return &TrasladosHandler{svc: svc, recepcion: recepcion}
}

// Iniciar: POST /v1/traslados
func (h *TrasladosHandler) Iniciar(c *gin.Context) {
	var req dto.IniciarTrasladoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.IniciarTraslado(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar: GET /v1/traslados?estado=en_transito,observado&desde=2024-05-01&page=1&limit=50
func (h *TrasladosHandler) Listar(c *gin.Context) {
	filter, msg := parseTrasladoFilter(c)
	if msg != "" {
		c.JSON(http.StatusBadRequest, apierror.NewWithCode(apierror.CodeValidacion, msg))
		return
	}
	resp, err := h.svc.ListarTraslados(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener: GET /v1/traslados/:id
func (h *TrasladosHandler) Obtener(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerTraslado(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Despachar: POST /v1/traslados/:id/despachar
func (h *TrasladosHandler) Despachar(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Despachar(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Recibir: POST /v1/traslados/:id/recepcion
func (h *TrasladosHandler) Recibir(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.RecibirTrasladoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.recepcion.Recibir(c.Request.Context(), id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Pagos: GET /v1/traslados/:id/pagos
func (h *TrasladosHandler) Pagos(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.PagosDelTraslado(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func parseTrasladoFilter(c *gin.Context) (dto.TrasladoFilter, string) {
	var f dto.TrasladoFilter

	if raw := c.Query("estado"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			e, err := model.ParseEstadoTraslado(strings.TrimSpace(s))
			if err != nil {
				return f, err.Error()
			}
			f.Estados = append(f.Estados, e)
		}
	}
	if raw := c.Query("desde"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			t, err = time.ParseInLocation("2006-01-02", raw, time.Local)
		}
		if err != nil {
			return f, "desde debe ser RFC3339 o YYYY-MM-DD"
		}
		f.Desde = &t
	}
	for param, dst := range map[string]**uuid.UUID{"caja_origen_id": &f.CajaOrigenID, "caja_destino_id": &f.CajaDestinoID} {
		if raw := c.Query(param); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return f, param + " inválido"
			}
			*dst = &id
		}
	}
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	return f, ""
}
