package handler

import (
	"net/http"

	"catu/internal/dto"
	"catu/internal/service"

	"github.com/gin-gonic/gin"
)

type TurnosHandler struct {
	svc    service.TurnoService
	arqueo service.ArqueoService
}

func NewTurnosHandler(svc service.TurnoService, arqueo service.ArqueoService) *TurnosHandler {
	return &TurnosHandler{svc: svc, arqueo: arqueo}
}

// Abrir: POST /v1/turnos
func (h *TurnosHandler) Abrir(c *gin.Context) {
	var req dto.AbrirTurnoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AbrirTurno(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obtener: GET /v1/turnos/:id
func (h *TurnosHandler) Obtener(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerTurno(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarPago: POST /v1/turnos/:id/pagos
func (h *TurnosHandler) RegistrarPago(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.PagoProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarPagoProveedor(c.Request.Context(), id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarPagos: GET /v1/turnos/:id/pagos
func (h *TurnosHandler) ListarPagos(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarPagos(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AnotarApertura: PATCH /v1/turnos/:id/apertura/nota
func (h *TurnosHandler) AnotarApertura(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.NotaAperturaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AnotarCierreApertura(c.Request.Context(), id, req); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Arqueo: POST /v1/turnos/:id/arqueo
// Counts the cash, closes the turno and returns the resultado.
func (h *TurnosHandler) Arqueo(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.ArqueoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.arqueo.Arqueo(c.Request.Context(), id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// TurnoActivo: GET /v1/cajas/:id/turno-activo
func (h *TurnosHandler) TurnoActivo(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.TurnoAbierto(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
