package service

import (
	"context"

	"catu/internal/model"
	"catu/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Tolerancia resolves the balanced-diferencia threshold: the parametros row
// wins over the configured default.
type Tolerancia struct {
	porDefecto decimal.Decimal
}

// NewTolerancia parses the configured default. An empty or invalid value
// falls back to model.ToleranciaPorDefecto.
func NewTolerancia(configurada string) Tolerancia {
	d, err := decimal.NewFromString(configurada)
	if err != nil || d.IsNegative() {
		if configurada != "" {
			log.Warn().Str("valor", configurada).Msg("tolerancia: valor configurado inválido, usando 0.01")
		}
		return Tolerancia{porDefecto: model.ToleranciaPorDefecto}
	}
	return Tolerancia{porDefecto: d}
}

// Valor reads the runtime override through repo (pool or tx-bound).
func (t Tolerancia) Valor(ctx context.Context, repo repository.ParametroRepository) decimal.Decimal {
	p, err := repo.FindByClave(ctx, model.ClaveToleranciaDiferencia)
	if err != nil {
		return t.porDefecto
	}
	d, err := decimal.NewFromString(p.Valor)
	if err != nil || d.IsNegative() {
		log.Warn().Str("valor", p.Valor).Msg("tolerancia: parámetro inválido, usando valor configurado")
		return t.porDefecto
	}
	return d
}
