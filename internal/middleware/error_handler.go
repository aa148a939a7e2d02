package middleware

import (
	"errors"
	"net/http"
	"time"

	"catu/internal/apierror"
	"catu/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorHandler turns the last error attached with c.Error into a response.
// Custody errors keep their message; anything else becomes an opaque 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var svcErr *service.Error
		if errors.As(err, &svcErr) {
			status, code := statusFor(svcErr.Kind)
			log.Warn().
				Str("request_id", c.GetString(RequestIDKey)).
				Str("path", c.FullPath()).
				Str("code", code).
				Msg(svcErr.Msg)
			c.AbortWithStatusJSON(status, apierror.NewWithCode(code, svcErr.Msg))
			return
		}

		log.Error().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("path", c.FullPath()).
			Str("method", c.Request.Method).
			Err(err).
			Msg("unhandled error")
		c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.NewWithCode(apierror.CodeInterno, "Error interno del servidor"))
	}
}

func statusFor(kind error) (int, string) {
	switch kind {
	case service.ErrValidation:
		return http.StatusBadRequest, apierror.CodeValidacion
	case service.ErrInvalidState:
		return http.StatusConflict, apierror.CodeEstadoInvalido
	case service.ErrDuplicate:
		return http.StatusConflict, apierror.CodeDuplicado
	case service.ErrNotFound:
		return http.StatusNotFound, apierror.CodeNoEncontrado
	}
	return http.StatusInternalServerError, apierror.CodeInterno
}

// Recovery handles panics and converts them into 500 responses.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Interface("panic", r).
					Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.NewWithCode(apierror.CodeInterno, "Error interno del servidor"))
			}
		}()
		c.Next()
	}
}

// Logger logs each request with method, path, status, latency and request_id.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		ev := log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
