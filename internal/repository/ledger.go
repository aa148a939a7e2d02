package repository

import (
	"context"

	"gorm.io/gorm"
)

// Ledger groups the custody repositories over one *gorm.DB, which is either
// the connection pool or an open transaction. Inside Transaction only the
// tx-bound Ledger passed to fn may be used.
type Ledger struct {
	db *gorm.DB

	Cajas      CajaRepository
	Empleados  EmpleadoRepository
	Turnos     TurnoRepository
	Arqueos    ArqueoRepository
	Traslados  TrasladoRepository
	Parametros ParametroRepository
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{
		db:         db,
		Cajas:      NewCajaRepository(db),
		Empleados:  NewEmpleadoRepository(db),
		Turnos:     NewTurnoRepository(db),
		Arqueos:    NewArqueoRepository(db),
		Traslados:  NewTrasladoRepository(db),
		Parametros: NewParametroRepository(db),
	}
}

// DB exposes the underlying handle (health checks, seeding).
func (l *Ledger) DB() *gorm.DB { return l.db }

// Transaction runs fn atomically. Any error returned by fn rolls back every
// write made through tx.
func (l *Ledger) Transaction(ctx context.Context, fn func(tx *Ledger) error) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewLedger(tx))
	})
}
