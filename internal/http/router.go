package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/nukigor/ai-voxarena/internal/http/handlers"
	httpMW "github.com/nukigor/ai-voxarena/internal/http/middleware"
	"github.com/nukigor/ai-voxarena/internal/observability"
	"github.com/nukigor/ai-voxarena/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	PersonaHandler          *httpH.PersonaHandler
	DebateHandler           *httpH.DebateHandler
	TaxonomyHandler         *httpH.TaxonomyHandler
	TaxonomyCategoryHandler *httpH.TaxonomyCategoryHandler
	HealthHandler           *httpH.HealthHandler

	// Optional: guards taxonomy writes when it carries a secret.
	AdminAuth *httpMW.AdminAuth
	// Optional: nil disables request metrics and /metrics.
	Metrics *observability.Metrics

	CORSOrigins    []string
	TracingEnabled bool
	ServiceName    string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		name := cfg.ServiceName
		if name == "" {
			name = "voxarena"
		}
		r.Use(otelgin.Middleware(name))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics, "/metrics"))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")

	if cfg.PersonaHandler != nil {
		api.GET("/personas", cfg.PersonaHandler.List)
		api.POST("/personas", cfg.PersonaHandler.Create)
		api.GET("/personas/:id", cfg.PersonaHandler.Get)
		api.PUT("/personas/:id", cfg.PersonaHandler.Update)
		api.DELETE("/personas/:id", cfg.PersonaHandler.Delete)
	}

	if cfg.DebateHandler != nil {
		api.GET("/debates", cfg.DebateHandler.List)
		api.POST("/debates", cfg.DebateHandler.Create)
		api.GET("/debates/:id", cfg.DebateHandler.Get)
		api.PUT("/debates/:id", cfg.DebateHandler.Update)
		api.DELETE("/debates/:id", cfg.DebateHandler.Delete)
	}

	admin := cfg.AdminAuth.RequireAdmin()

	if cfg.TaxonomyHandler != nil {
		api.GET("/taxonomy", cfg.TaxonomyHandler.ListActive)
		api.GET("/taxonomy/categories", cfg.TaxonomyHandler.ListCategoryKeys)
		api.GET("/taxonomy/terms", cfg.TaxonomyHandler.ListTerms)
		api.POST("/taxonomy/terms", admin, cfg.TaxonomyHandler.CreateTerm)
		api.PUT("/taxonomy/terms/:id", admin, cfg.TaxonomyHandler.UpdateTerm)
		api.DELETE("/taxonomy/terms/:id", admin, cfg.TaxonomyHandler.DeleteTerm)
	}

	if cfg.TaxonomyCategoryHandler != nil {
		api.GET("/taxonomycategories", cfg.TaxonomyCategoryHandler.List)
		api.POST("/taxonomycategories", admin, cfg.TaxonomyCategoryHandler.Create)
		api.GET("/taxonomycategories/:id", cfg.TaxonomyCategoryHandler.Get)
		api.PUT("/taxonomycategories/:id", admin, cfg.TaxonomyCategoryHandler.Update)
		api.DELETE("/taxonomycategories/:id", admin, cfg.TaxonomyCategoryHandler.Delete)
	}

	return r
}
