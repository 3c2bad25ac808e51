package router

import (
	"time"

	"github.com/Arcay322/Granja-cuyes-sub003/internal/config"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/handler"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/middleware"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/repository"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	alimentoRepo := repository.NewAlimentoRepository(db)
	consumoRepo := repository.NewConsumoRepository(db)
	cuyRepo := repository.NewCuyRepository(db)
	galponRepo := repository.NewGalponRepository(db)
	sanidadRepo := repository.NewSanidadRepository(db)
	reproduccionRepo := repository.NewReproduccionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	alimentoSvc := service.NewAlimentoService(alimentoRepo)
	consumoSvc := service.NewConsumoService(consumoRepo, alimentoRepo)
	cuySvc := service.NewCuyService(cuyRepo)
	galponSvc := service.NewGalponService(galponRepo, cuyRepo)
	sanidadSvc := service.NewSanidadService(sanidadRepo, cuyRepo)
	reproduccionSvc := service.NewReproduccionService(reproduccionRepo, cuyRepo, cuySvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	alimentosH := handler.NewAlimentosHandler(alimentoSvc)
	consumosH := handler.NewConsumosHandler(consumoSvc)
	cuyesH := handler.NewCuyesHandler(cuySvc)
	galponesH := handler.NewGalponesHandler(galponSvc)
	sanidadH := handler.NewSanidadHandler(sanidadSvc)
	reproduccionH := handler.NewReproduccionHandler(reproduccionSvc)
	dashboardH := handler.NewDashboardHandler(cuySvc, rdb)
	reportesH := handler.NewReportesHandler(consumoSvc, cfg.PDFStoragePath)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	ambos := middleware.RequireRole("admin", "operario")
	soloAdmin := middleware.RequireRole("admin")

	v1 := r.Group("/v1", jwtMW)
	{
		// Cuyes — registro y clasificación
		v1.POST("/cuyes", ambos, cuyesH.Crear)
		v1.GET("/cuyes", ambos, cuyesH.Listar)
		v1.GET("/cuyes/:id", ambos, cuyesH.ObtenerPorID)
		v1.PUT("/cuyes/:id", ambos, cuyesH.Actualizar)
		v1.DELETE("/cuyes/:id", soloAdmin, cuyesH.Eliminar)
		v1.PATCH("/cuyes/:id/proposito", ambos, cuyesH.CambiarProposito)
		v1.POST("/cuyes/masivo", ambos, cuyesH.RegistroMasivo)

		// Alimentos — catálogo y stock
		v1.GET("/alimentos", ambos, alimentosH.Listar)
		v1.GET("/alimentos/:id", ambos, alimentosH.ObtenerPorID)
		v1.GET("/alimentos/alertas", ambos, alimentosH.Alertas)
		v1.PATCH("/alimentos/:id/stock", ambos, alimentosH.AjustarStock)
		alim := v1.Group("/alimentos", soloAdmin)
		{
			alim.POST("", alimentosH.Crear)
			alim.PUT("/:id", alimentosH.Actualizar)
			alim.DELETE("/:id", alimentosH.Desactivar)
		}

		// Consumos — libro de consumo de alimento
		v1.POST("/consumos", ambos, consumosH.Registrar)
		v1.GET("/consumos", ambos, consumosH.Listar)
		v1.GET("/consumos/estadisticas", ambos, consumosH.Estadisticas)
		v1.GET("/consumos/:id", ambos, consumosH.ObtenerPorID)
		v1.PUT("/consumos/:id", ambos, consumosH.Actualizar)
		v1.DELETE("/consumos/:id", ambos, consumosH.Eliminar)

		// Galpones y pozas
		v1.GET("/galpones", ambos, galponesH.Listar)
		v1.GET("/galpones/:id", ambos, galponesH.ObtenerPorID)
		galp := v1.Group("/galpones", soloAdmin)
		{
			galp.POST("", galponesH.Crear)
			galp.PUT("/:id", galponesH.Actualizar)
			galp.DELETE("/:id", galponesH.Eliminar)
		}
		v1.POST("/pozas", soloAdmin, galponesH.CrearPoza)
		v1.DELETE("/pozas/:id", soloAdmin, galponesH.EliminarPoza)

		// Sanidad
		v1.POST("/sanidad", ambos, sanidadH.Crear)
		v1.GET("/sanidad/cuy/:cuy_id", ambos, sanidadH.ListarPorCuy)
		v1.PUT("/sanidad/:id", ambos, sanidadH.Actualizar)
		v1.DELETE("/sanidad/:id", ambos, sanidadH.Eliminar)

		// Reproducción
		v1.POST("/preneces", ambos, reproduccionH.CrearPrenez)
		v1.GET("/preneces", ambos, reproduccionH.ListarPreneces)
		v1.PATCH("/preneces/:id/fallida", ambos, reproduccionH.MarcarFallida)
		v1.POST("/preneces/:id/parto", ambos, reproduccionH.RegistrarParto)

		// Dashboard y reportes
		v1.GET("/dashboard/cuyes", ambos, dashboardH.EstadisticasCuyes)
		v1.GET("/reportes/consumos/pdf", ambos, reportesH.ConsumosPDF)

		// Usuarios — solo admin
		usuarios := v1.Group("/usuarios", soloAdmin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
