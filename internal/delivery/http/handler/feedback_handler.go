package handler

import (
	"github.com/gofiber/fiber/v3"

	"jobwise/internal/pkg/response"
	"jobwise/internal/usecase/feedbacks"
)

type FeedbackHandler struct {
	feedback *feedbacks.Service
}

func NewFeedbackHandler(feedback *feedbacks.Service) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

func (h *FeedbackHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/feedback", h.Submit)
}

func (h *FeedbackHandler) Submit(c fiber.Ctx) error {
	var in feedbacks.SubmitInput
	if err := c.Bind().Body(&in); err != nil {
		return badBody(err)
	}

	e, err := h.feedback.Submit(c.Context(), in)
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusCreated, "Thank you for your feedback!", e)
}
