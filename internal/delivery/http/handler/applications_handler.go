package handler

import (
	"github.com/gofiber/fiber/v3"

	"jobwise/internal/delivery/http/dto"
	"jobwise/internal/domain"
	"jobwise/internal/pkg/response"
	"jobwise/internal/search"
	"jobwise/internal/usecase/jobs"
)

const applicationNotFound = "Application not found"

type ApplicationsHandler struct{}

func NewApplicationsHandler() *ApplicationsHandler {
	return &ApplicationsHandler{}
}

func (h *ApplicationsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Patch("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

// List returns the caller's records, newest first, narrowed by the search
// and status query parameters.
func (h *ApplicationsHandler) List(c fiber.Ctx) error {
	ws, err := workspaceOf(c)
	if err != nil {
		return err
	}

	status := c.Query("status")
	if !search.ValidStatusFilter(status) {
		return mapUsecaseError(domain.NewValidationError("status", "status must be one of: all, applied, interview, offer, rejected, accepted"), "")
	}

	items, err := ws.Jobs.List(c.Context())
	if err != nil {
		return mapUsecaseError(err, "")
	}
	visible := search.Filter(items, c.Query("search"), status)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationListResponse(visible, len(items)))
}

func (h *ApplicationsHandler) Create(c fiber.Ctx) error {
	ws, err := workspaceOf(c)
	if err != nil {
		return err
	}

	var in jobs.CreateInput
	if err := c.Bind().Body(&in); err != nil {
		return badBody(err)
	}

	a, err := ws.Jobs.Create(c.Context(), in)
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusCreated, "Application added successfully!", dto.NewApplicationResponse(a))
}

func (h *ApplicationsHandler) Update(c fiber.Ctx) error {
	ws, err := workspaceOf(c)
	if err != nil {
		return err
	}

	var in jobs.UpdateInput
	if err := c.Bind().Body(&in); err != nil {
		return badBody(err)
	}
	if in.Empty() {
		return mapUsecaseError(domain.NewValidationError("", "at least one field is required"), "")
	}

	a, err := ws.Jobs.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return mapUsecaseError(err, applicationNotFound)
	}
	return response.Success(c, fiber.StatusOK, "Application updated successfully!", dto.NewApplicationResponse(a))
}

func (h *ApplicationsHandler) Delete(c fiber.Ctx) error {
	ws, err := workspaceOf(c)
	if err != nil {
		return err
	}

	if err := ws.Jobs.Delete(c.Context(), c.Params("id")); err != nil {
		return mapUsecaseError(err, applicationNotFound)
	}
	return response.Success(c, fiber.StatusOK, "Application deleted successfully!", nil)
}
