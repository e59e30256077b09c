package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"jobwise/internal/domain"
	"jobwise/internal/domain/application"
	"jobwise/internal/pkg/response"
	"jobwise/internal/usecase/analytics"
	"jobwise/internal/usecase/feedbacks"
)

const feedbackNotFound = "Feedback not found"

type AdminHandler struct {
	stats    *analytics.Service
	platform analytics.PlatformSource
	feedback *feedbacks.Service
}

func NewAdminHandler(stats *analytics.Service, platform analytics.PlatformSource, feedback *feedbacks.Service) *AdminHandler {
	return &AdminHandler{stats: stats, platform: platform, feedback: feedback}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/overview", h.Overview)
	r.Get("/users", h.Users)
	r.Get("/feedback", h.ListFeedback)
	r.Delete("/feedback/:id", h.DeleteFeedback)
	r.Get("/growth", h.Growth)
}

func (h *AdminHandler) Overview(c fiber.Ctx) error {
	report, err := h.stats.Admin(c.Context(), h.platform, h.feedback)
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}

func (h *AdminHandler) Users(c fiber.Ctx) error {
	roster, err := h.platform.Roster(c.Context())
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.List(c, response.MessageOK, roster, len(roster))
}

func (h *AdminHandler) ListFeedback(c fiber.Ctx) error {
	entries, err := h.feedback.List(c.Context())
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.List(c, response.MessageOK, entries, len(entries))
}

func (h *AdminHandler) DeleteFeedback(c fiber.Ctx) error {
	if err := h.feedback.Delete(c.Context(), c.Params("id")); err != nil {
		return mapUsecaseError(err, feedbackNotFound)
	}
	return response.Success(c, fiber.StatusOK, "Feedback deleted", nil)
}

// Growth buckets accounts, applications and feedback by period. from and
// to are optional YYYY-MM-DD dates; to is inclusive.
func (h *AdminHandler) Growth(c fiber.Ctx) error {
	q := analytics.GrowthQuery{}

	if raw := c.Query("period"); raw != "" {
		p, err := analytics.ParsePeriod(raw)
		if err != nil {
			return mapUsecaseError(err, "")
		}
		q.Period = p
	}

	var err error
	if q.From, err = queryDate(c, "from"); err != nil {
		return mapUsecaseError(err, "")
	}
	if q.To, err = queryDate(c, "to"); err != nil {
		return mapUsecaseError(err, "")
	}

	points, err := h.stats.Growth(c.Context(), q, h.platform, h.feedback)
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, points)
}

func queryDate(c fiber.Ctx, key string) (time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := application.ParseDate(raw)
	if err != nil {
		return time.Time{}, domain.NewValidationError(key, key+" must be a valid date (YYYY-MM-DD)")
	}
	return t, nil
}
