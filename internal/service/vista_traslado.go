package service

import (
	"catu/internal/dto"
	"catu/internal/model"
)

// NuevaVistaTraslado joins a preloaded traslado with its arqueo, turno,
// employees, cajas and recepcion. Missing links stay nil.
func NuevaVistaTraslado(t *model.Traslado) dto.TrasladoVista {
	v := dto.TrasladoVista{
		ID:            t.ID,
		Monto:         t.Monto,
		Estado:        t.Estado,
		FechaHora:     t.FechaHora,
		DespachadoEn:  t.DespachadoEn,
		Observaciones: t.Observaciones,
		CajaOrigen:    cajaRef(t.CajaOrigen),
		CajaDestino:   cajaRef(t.CajaDestino),
		EmpleadoEnvia: empleadoRef(t.EmpleadoEnvia),
	}

	if tu := t.Turno; tu != nil {
		v.Turno = &dto.TurnoRef{
			ID:       tu.ID,
			Estado:   tu.Estado,
			Inicio:   tu.Inicio,
			Fin:      tu.Fin,
			Empleado: empleadoRef(tu.Empleado),
		}
		// Older traslados may lack caja_origen_id; the turno still knows it.
		if v.CajaOrigen == nil {
			v.CajaOrigen = cajaRef(tu.Caja)
		}
	}

	if a := t.Arqueo; a != nil {
		v.Arqueo = &dto.ArqueoRef{
			ID:                    a.ID,
			MontoContado:          a.MontoContado,
			MontoFinal:            a.MontoFinal,
			Diferencia:            a.Diferencia,
			TotalPagosProveedores: a.TotalPagosProveedores,
			CreatedAt:             a.CreatedAt,
		}
	}

	if r := t.Recepcion; r != nil {
		v.Recepcion = &dto.RecepcionRef{
			ID:             r.ID,
			EmpleadoRecibe: empleadoRef(r.EmpleadoRecibe),
			MontoRecibido:  r.MontoRecibido,
			Diferencia:     r.Diferencia,
			FechaHora:      r.FechaHora,
			Comentario:     r.Comentario,
		}
	}
	return v
}

func cajaRef(c *model.Caja) *dto.CajaRef {
	if c == nil {
		return nil
	}
	return &dto.CajaRef{ID: c.ID, Nombre: c.Nombre, Tipo: c.Tipo, Ubicacion: c.Ubicacion}
}

func empleadoRef(e *model.Empleado) *dto.EmpleadoRef {
	if e == nil {
		return nil
	}
	return &dto.EmpleadoRef{ID: e.ID, NombreCompleto: e.NombreCompleto, Cargo: e.Cargo}
}
