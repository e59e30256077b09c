package handler

import (
	"github.com/gofiber/fiber/v3"

	"jobwise/internal/delivery/http/dto"
	"jobwise/internal/pkg/response"
	"jobwise/internal/usecase/analytics"
)

type DashboardHandler struct {
	stats *analytics.Service
}

func NewDashboardHandler(stats *analytics.Service) *DashboardHandler {
	return &DashboardHandler{stats: stats}
}

func (h *DashboardHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/dashboard", h.Get)
}

func (h *DashboardHandler) Get(c fiber.Ctx) error {
	ws, err := workspaceOf(c)
	if err != nil {
		return err
	}

	stats, err := h.stats.Dashboard(c.Context(), ws.UserID, ws.Jobs)
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewDashboardResponse(stats))
}
