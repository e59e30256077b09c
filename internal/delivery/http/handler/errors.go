package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"jobwise/internal/delivery/http/middleware"
	"jobwise/internal/domain"
	"jobwise/internal/pkg/response"
	"jobwise/internal/usecase/auth"
	"jobwise/internal/workspace"
)

// mapUsecaseError turns core errors into AppErrors. Validation messages are
// surfaced verbatim and the error middleware lists the offending field.
func mapUsecaseError(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return middleware.NewAppError(fiber.StatusBadRequest, verr.Error(), nil, err)
	case errors.Is(err, domain.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, notFoundMsg, nil, err)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", nil, err)
	case auth.IsCanceled(err):
		return middleware.NewAppError(fiber.StatusGatewayTimeout, response.MessageTimeout, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func badBody(err error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
}

func workspaceOf(c fiber.Ctx) (*workspace.Workspace, error) {
	ws, ok := middleware.WorkspaceFrom(c)
	if !ok {
		return nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return ws, nil
}
