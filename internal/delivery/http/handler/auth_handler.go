package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"jobwise/internal/delivery/http/dto"
	"jobwise/internal/delivery/http/middleware"
	"jobwise/internal/domain/user"
	"jobwise/internal/pkg/response"
	"jobwise/internal/usecase/auth"
	"jobwise/internal/workspace"
)

// Sessions is the part of the workspace registry the auth endpoints use.
type Sessions interface {
	Login(ctx context.Context, email, password string) (*workspace.Workspace, user.Session, error)
	Register(ctx context.Context, in auth.RegisterInput) (*workspace.Workspace, user.Session, error)
	Logout(ctx context.Context, userID string) error
}

type AuthHandler struct {
	sessions Sessions
	timeout  time.Duration
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// NewAuthHandler builds the auth endpoints. A positive timeout bounds each
// backend call.
func NewAuthHandler(sessions Sessions, timeout time.Duration) *AuthHandler {
	return &AuthHandler{sessions: sessions, timeout: timeout}
}

// RegisterRoutes mounts login and register publicly and guards logout and
// me with requireSession.
func (h *AuthHandler) RegisterRoutes(r fiber.Router, requireSession fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/login", h.Login)
	r.Post("/register", h.Register)
	r.Post("/logout", requireSession, h.Logout)
	r.Get("/me", requireSession, h.Me)
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return badBody(err)
	}

	ctx, cancel := h.backendContext(c)
	defer cancel()

	_, s, err := h.sessions.Login(ctx, req.Email, req.Password)
	if err != nil {
		return mapUsecaseError(err, "")
	}
	msg := "Welcome back!"
	if user.HasRole(s, user.RoleAdmin) {
		msg = "Welcome back, Admin!"
	}
	return response.Success(c, fiber.StatusOK, msg, dto.NewSessionResponse(s))
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return badBody(err)
	}

	ctx, cancel := h.backendContext(c)
	defer cancel()

	_, s, err := h.sessions.Register(ctx, auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     user.Role(req.Role),
	})
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusCreated, "Account created successfully!", dto.NewSessionResponse(s))
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	userID, _ := c.Locals(middleware.CtxUserIDKey).(string)
	if err := h.sessions.Logout(c.Context(), userID); err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHandler) Me(c fiber.Ctx) error {
	s := middleware.SessionFrom(c)
	return response.Success(c, fiber.StatusOK, response.MessageOK, s.User)
}

func (h *AuthHandler) backendContext(c fiber.Ctx) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Context())
	}
	return context.WithTimeout(c.Context(), h.timeout)
}
