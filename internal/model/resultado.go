package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ToleranciaPorDefecto is the magnitude below which a diferencia counts as balanced.
var ToleranciaPorDefecto = decimal.RequireFromString("0.01")

// TipoResultado: "cuadrado" | "faltante" | "sobrante"
type TipoResultado string

const (
	ResultadoCuadrado TipoResultado = "cuadrado"
	ResultadoFaltante TipoResultado = "faltante"
	ResultadoSobrante TipoResultado = "sobrante"
)

// Resultado is the outcome of comparing a counted or received amount with the
// expected one. Monto is the magnitude of the shortage or surplus and zero when
// balanced; Diferencia keeps the signed value verbatim.
type Resultado struct {
	Tipo       TipoResultado
	Monto      decimal.Decimal
	Diferencia decimal.Decimal
}

// Clasificar builds the Resultado of a signed diferencia (positive = surplus).
func Clasificar(diferencia, tolerancia decimal.Decimal) Resultado {
	switch {
	case diferencia.Abs().LessThan(tolerancia):
		return Resultado{Tipo: ResultadoCuadrado, Monto: decimal.Zero, Diferencia: diferencia}
	case diferencia.IsNegative():
		return Resultado{Tipo: ResultadoFaltante, Monto: diferencia.Abs(), Diferencia: diferencia}
	default:
		return Resultado{Tipo: ResultadoSobrante, Monto: diferencia, Diferencia: diferencia}
	}
}

func (r Resultado) Cuadrado() bool { return r.Tipo == ResultadoCuadrado }

func (r Resultado) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Tipo       TipoResultado   `json:"tipo"`
		Monto      decimal.Decimal `json:"monto"`
		Diferencia decimal.Decimal `json:"diferencia"`
	}{r.Tipo, r.Monto, r.Diferencia})
}
