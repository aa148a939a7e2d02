package model

import (
	"database/sql/driver"
	"fmt"
)

// EstadoTurno is the closed set of shift states. The zero value is the
// "sin iniciar" state and is persisted as NULL (legacy rows).
// Values outside the set cannot be constructed outside this package.
type EstadoTurno struct{ v string }

var (
	TurnoSinIniciar = EstadoTurno{}
	TurnoAbierto    = EstadoTurno{"abierto"}
	TurnoCerrado    = EstadoTurno{"cerrado"}
)

func (e EstadoTurno) String() string {
	if e.v == "" {
		return "sin_iniciar"
	}
	return e.v
}

// ParseEstadoTurno maps a stored value to its state.
func ParseEstadoTurno(s string) (EstadoTurno, error) {
	switch s {
	case "":
		return TurnoSinIniciar, nil
	case TurnoAbierto.v:
		return TurnoAbierto, nil
	case TurnoCerrado.v:
		return TurnoCerrado, nil
	}
	return EstadoTurno{}, fmt.Errorf("estado de turno desconocido: %q", s)
}

func (e EstadoTurno) Value() (driver.Value, error) {
	if e.v == "" {
		return nil, nil
	}
	return e.v, nil
}

func (e *EstadoTurno) Scan(src interface{}) error {
	s, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParseEstadoTurno(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

func (EstadoTurno) GormDataType() string { return "varchar(20)" }

func (e EstadoTurno) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (e *EstadoTurno) UnmarshalText(b []byte) error {
	s := string(b)
	if s == "sin_iniciar" {
		s = ""
	}
	parsed, err := ParseEstadoTurno(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// EstadoTraslado is the closed set of transfer states:
//
//	pendiente --despachar--> en_transito --recibir--> recibido | observado
type EstadoTraslado struct{ v string }

var (
	TrasladoPendiente  = EstadoTraslado{"pendiente"}
	TrasladoEnTransito = EstadoTraslado{"en_transito"}
	TrasladoRecibido   = EstadoTraslado{"recibido"}
	TrasladoObservado  = EstadoTraslado{"observado"}
)

var transicionesTraslado = map[EstadoTraslado][]EstadoTraslado{
	TrasladoPendiente:  {TrasladoEnTransito},
	TrasladoEnTransito: {TrasladoRecibido, TrasladoObservado},
}

func (e EstadoTraslado) String() string { return e.v }

// Terminal reports whether no further transition is possible.
func (e EstadoTraslado) Terminal() bool {
	return e == TrasladoRecibido || e == TrasladoObservado
}

// PuedePasarA reports whether dst is a legal next state.
func (e EstadoTraslado) PuedePasarA(dst EstadoTraslado) bool {
	for _, s := range transicionesTraslado[e] {
		if s == dst {
			return true
		}
	}
	return false
}

// ParseEstadoTraslado maps a stored value to its state.
func ParseEstadoTraslado(s string) (EstadoTraslado, error) {
	for _, e := range []EstadoTraslado{TrasladoPendiente, TrasladoEnTransito, TrasladoRecibido, TrasladoObservado} {
		if e.v == s {
			return e, nil
		}
	}
	return EstadoTraslado{}, fmt.Errorf("estado de traslado desconocido: %q", s)
}

func (e EstadoTraslado) Value() (driver.Value, error) {
	if e.v == "" {
		return nil, fmt.Errorf("estado de traslado vacío")
	}
	return e.v, nil
}

func (e *EstadoTraslado) Scan(src interface{}) error {
	s, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParseEstadoTraslado(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

func (EstadoTraslado) GormDataType() string { return "varchar(20)" }

func (e EstadoTraslado) MarshalText() ([]byte, error) { return []byte(e.v), nil }

func (e *EstadoTraslado) UnmarshalText(b []byte) error {
	parsed, err := ParseEstadoTraslado(string(b))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

func scanString(src interface{}) (string, error) {
	switch v := src.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	return "", fmt.Errorf("tipo no soportado para estado: %T", src)
}
