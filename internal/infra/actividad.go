package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ActividadResponse is returned by the activity-totals provider for one turno.
type ActividadResponse struct {
	TurnoID   string          `json:"turno_id"`
	TotalNeto decimal.Decimal `json:"total_neto"`
}

// ActividadClient fetches a turno's net sales activity from the external
// provider. Calls go through the circuit breaker so a downed provider fails fast.
type ActividadClient struct {
	baseURL    string
	httpClient *http.Client
	cb         *CircuitBreaker
}

func NewActividadClient(baseURL string, cb *CircuitBreaker) *ActividadClient {
	return &ActividadClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cb:         cb,
	}
}

// ActividadNeta returns GET {baseURL}/turnos/{id}/actividad → total_neto.
func (c *ActividadClient) ActividadNeta(ctx context.Context, turnoID uuid.UUID) (decimal.Decimal, error) {
	var result ActividadResponse
	err := c.cb.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/turnos/%s/actividad", c.baseURL, turnoID), nil)
		if err != nil {
			return fmt.Errorf("actividad: create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("actividad: provider unreachable: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("actividad: provider returned %d", resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("actividad: decode response: %w", err)
		}
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return result.TotalNeto, nil
}
