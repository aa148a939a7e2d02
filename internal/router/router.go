package router

import (
	"catu/internal/config"
	"catu/internal/handler"
	"catu/internal/infra"
	"catu/internal/middleware"
	"catu/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the wired services the HTTP shell exposes.
type Deps struct {
	DB          *gorm.DB
	Redis       *redis.Client // nil = no cache/queues
	ActividadCB *infra.CircuitBreaker
	RateLimiter *middleware.RateLimiter

	Turnos      service.TurnoService
	Arqueos     service.ArqueoService
	Traslados   service.TrasladoService
	Recepciones service.RecepcionService
}

// New returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Ledger ← DB/Redis
func New(cfg *config.Config, d Deps) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	if d.RateLimiter != nil {
		r.Use(d.RateLimiter.Handler())
	}
	r.Use(middleware.ErrorHandler())

	turnosH := handler.NewTurnosHandler(d.Turnos, d.Arqueos)
	trasladosH := handler.NewTrasladosHandler(d.Traslados, d.Recepciones)

	r.GET("/health", handler.Health(d.DB, d.Redis, d.ActividadCB))

	v1 := r.Group("/v1")
	{
		turnos := v1.Group("/turnos")
		{
			turnos.POST("", turnosH.Abrir)
			turnos.GET("/:id", turnosH.Obtener)
			turnos.POST("/:id/pagos", turnosH.RegistrarPago)
			turnos.GET("/:id/pagos", turnosH.ListarPagos)
			turnos.PATCH("/:id/apertura/nota", turnosH.AnotarApertura)
			turnos.POST("/:id/arqueo", turnosH.Arqueo)
		}

		v1.GET("/cajas/:id/turno-activo", turnosH.TurnoActivo)

		traslados := v1.Group("/traslados")
		{
			traslados.POST("", trasladosH.Iniciar)
			traslados.GET("", trasladosH.Listar)
			traslados.GET("/:id", trasladosH.Obtener)
			traslados.POST("/:id/despachar", trasladosH.Despachar)
			traslados.POST("/:id/recepcion", trasladosH.Recibir)
			traslados.GET("/:id/pagos", trasladosH.Pagos)
		}
	}

	return r
}
