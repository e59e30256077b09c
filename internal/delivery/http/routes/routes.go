package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"

	"jobwise/internal/delivery/http/handler"
	"jobwise/internal/infrastructure/kv"
	v1 "jobwise/internal/delivery/http/routes/v1"
)

type Registry struct {
	health  *handler.HealthHandler
	metrics http.Handler
	api     v1.Deps
}

// NewRegistry wires the public endpoints and the versioned API. A nil
// metrics handler leaves /metrics unregistered. store backs /ready.
func NewRegistry(api v1.Deps, metrics http.Handler, store kv.Store) *Registry {
	return &Registry{health: handler.NewHealthHandler(store), metrics: metrics, api: api}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerMetrics(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerMetrics(app *fiber.App) {
	if r.metrics == nil {
		return
	}
	app.Get("/metrics", adaptor.HTTPHandler(r.metrics))
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.api)
}
