// Package apierror provides the error envelopes written to HTTP clients.
// Internal details (stack traces, SQL errors) never reach this package.
package apierror

// Codes for custody failures. Clients re-fetch on CodeEstadoInvalido and may
// treat CodeDuplicado as a no-op.
const (
	CodeValidacion     = "validacion"
	CodeEstadoInvalido = "estado_invalido"
	CodeDuplicado      = "duplicado"
	CodeNoEncontrado   = "no_encontrado"
	CodeInterno        = "interno"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

func NewWithCode(code, msg string) *APIError {
	return &APIError{Code: code, Detail: msg}
}

// ValidationError wraps per-field binding errors.
type ValidationError struct {
	Code   string            `json:"code"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Code: CodeValidacion, Detail: "Error de validacion", Fields: fields}
}
