package router

import (
	"net/http"

	"github.com/selimb1/conta100/internal/apierror"
	"github.com/selimb1/conta100/internal/config"
	"github.com/selimb1/conta100/internal/handler"
	"github.com/selimb1/conta100/internal/infra"
	"github.com/selimb1/conta100/internal/middleware"
	"github.com/selimb1/conta100/internal/service"
	"github.com/selimb1/conta100/internal/web"

	"github.com/gin-gonic/gin"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← ContaClient ← Conta API
func New(cfg *config.Config, api *infra.ContaClient, limiter *middleware.RateLimiter) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.HTMLRender = renderer

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.ErrorHandler())
	if limiter != nil {
		r.Use(limiter.Middleware())
	}

	// ── Services ─────────────────────────────────────────────────────────────
	clienteSvc := service.NewClienteService(api)
	documentoSvc := service.NewDocumentoService(api)
	previewSvc := service.NewPreviewService(api)
	exportSvc := service.NewExportService(api)

	// ── Handlers ─────────────────────────────────────────────────────────────
	clientesH := handler.NewClientesHandler(clienteSvc)
	documentosH := handler.NewDocumentosHandler(clienteSvc, documentoSvc)
	previewH := handler.NewPreviewHandler(clienteSvc, previewSvc)
	resultadosH := handler.NewResultadosHandler(clienteSvc, exportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(api))

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, web.DefaultTab()) })

	r.GET("/clientes", clientesH.Listar)
	r.POST("/clientes", clientesH.Crear)
	r.POST("/clientes/:id/eliminar", clientesH.Eliminar)

	r.GET("/documentos", documentosH.Formulario)
	r.POST("/documentos", documentosH.Subir)

	r.GET("/previsualizacion", previewH.Formulario)
	r.POST("/previsualizacion", previewH.Procesar)
	r.GET("/previsualizacion/pdf", previewH.PDF)

	r.GET("/resultados", resultadosH.Panel)

	r.GET("/configuracion", handler.Configuracion(api.BaseURL()))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, apierror.New("Recurso no encontrado"))
	})

	return r, nil
}
