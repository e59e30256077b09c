package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"jobwise/internal/delivery/http/middleware"
	"jobwise/internal/infrastructure/kv"
	"jobwise/internal/pkg/response"
)

const readyTimeout = 2 * time.Second

type HealthHandler struct {
	store kv.Store
}

// NewHealthHandler reports liveness on /health and checks store on /ready.
// A nil store is always ready.
func NewHealthHandler(store kv.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"status": "up"})
}

func (h *HealthHandler) Ready(c fiber.Ctx) error {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Context(), readyTimeout)
		defer cancel()
		if err := kv.Ping(ctx, h.store); err != nil {
			return middleware.NewAppError(fiber.StatusServiceUnavailable, "storage unavailable", nil, err)
		}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"status": "ready"})
}
