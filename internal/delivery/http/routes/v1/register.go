package v1

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"jobwise/internal/delivery/http/handler"
	"jobwise/internal/delivery/http/middleware"
	"jobwise/internal/domain/user"
	"jobwise/internal/pkg/jwt"
	"jobwise/internal/usecase/analytics"
	"jobwise/internal/usecase/feedbacks"
	"jobwise/internal/workspace"
)

// Deps is what the v1 API is built from.
type Deps struct {
	JWT         jwt.Service
	Workspaces  *workspace.Registry
	Feedback    *feedbacks.Service
	Analytics   *analytics.Service
	AuthTimeout time.Duration
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	authMw := middleware.NewAuthMiddleware(deps.JWT, deps.Workspaces)

	authHandler := handler.NewAuthHandler(deps.Workspaces, deps.AuthTimeout)
	applicationsHandler := handler.NewApplicationsHandler()
	dashboardHandler := handler.NewDashboardHandler(deps.Analytics)
	feedbackHandler := handler.NewFeedbackHandler(deps.Feedback)
	adminHandler := handler.NewAdminHandler(deps.Analytics, deps.Workspaces, deps.Feedback)

	authHandler.RegisterRoutes(r.Group("/auth"), authMw.Middleware())

	feedbackHandler.RegisterRoutes(r)

	protected := r.Group("", authMw.Middleware())
	applicationsHandler.RegisterRoutes(protected.Group("/applications"))
	dashboardHandler.RegisterRoutes(protected)

	admin := protected.Group("/admin", middleware.RequireRole(user.RoleAdmin))
	adminHandler.RegisterRoutes(admin)
}
