package app

import (
	"github.com/nukigor/ai-voxarena/internal/http"
	httpH "github.com/nukigor/ai-voxarena/internal/http/handlers"
	httpMW "github.com/nukigor/ai-voxarena/internal/http/middleware"
	"github.com/nukigor/ai-voxarena/internal/observability"
	"github.com/nukigor/ai-voxarena/internal/platform/logger"
)

type Middleware struct {
	AdminAuth *httpMW.AdminAuth
}

type Handlers struct {
	Health           *httpH.HealthHandler
	Persona          *httpH.PersonaHandler
	Debate           *httpH.DebateHandler
	Taxonomy         *httpH.TaxonomyHandler
	TaxonomyCategory *httpH.TaxonomyCategoryHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:           httpH.NewHealthHandler(),
		Persona:          httpH.NewPersonaHandler(services.Personas),
		Debate:           httpH.NewDebateHandler(services.Debates),
		Taxonomy:         httpH.NewTaxonomyHandler(services.Taxonomy),
		TaxonomyCategory: httpH.NewTaxonomyCategoryHandler(services.Taxonomy),
	}
}

func wireMiddleware(log *logger.Logger, cfg Config) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		AdminAuth: httpMW.NewAdminAuth(log, cfg.AdminJWTSecret),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware, metrics *observability.Metrics) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:                     log,
		HealthHandler:           handlers.Health,
		PersonaHandler:          handlers.Persona,
		DebateHandler:           handlers.Debate,
		TaxonomyHandler:         handlers.Taxonomy,
		TaxonomyCategoryHandler: handlers.TaxonomyCategory,
		AdminAuth:               middleware.AdminAuth,
		Metrics:                 metrics,
		CORSOrigins:             cfg.CORSOrigins,
		TracingEnabled:          cfg.Otel.Enabled,
		ServiceName:             cfg.Otel.ServiceName,
	})
}
