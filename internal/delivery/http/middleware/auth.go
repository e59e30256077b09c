package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"jobwise/internal/domain/user"
	"jobwise/internal/pkg/jwt"
	"jobwise/internal/workspace"
)

const (
	CtxUserIDKey    = "user_id"
	CtxSessionKey   = "session"
	CtxWorkspaceKey = "workspace"
)

// WorkspaceOpener resolves the workspace of a signed-in user.
type WorkspaceOpener interface {
	Open(ctx context.Context, userID string) (*workspace.Workspace, error)
}

type AuthMiddleware struct {
	jwt    jwt.Service
	spaces WorkspaceOpener
}

func NewAuthMiddleware(jwtSvc jwt.Service, spaces WorkspaceOpener) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc, spaces: spaces}
}

// Middleware admits requests whose bearer token is valid and is still the
// live token of the user's session. A token from an ended session is
// rejected even before it expires.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		ws, err := m.spaces.Open(c.Context(), claims.UserID)
		if err != nil {
			return NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}

		s := ws.Session.Current()
		if !s.Authenticated() || s.Token != token {
			return NewAppError(fiber.StatusUnauthorized, "Session ended", nil, nil)
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxSessionKey, s)
		c.Locals(CtxWorkspaceKey, ws)

		return c.Next()
	}
}

// RequireRole admits only sessions holding role. It must run after the auth
// middleware.
func RequireRole(role user.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		if !user.HasRole(SessionFrom(c), role) {
			return NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
		}
		return c.Next()
	}
}

func SessionFrom(c fiber.Ctx) user.Session {
	s, _ := c.Locals(CtxSessionKey).(user.Session)
	return s
}

func WorkspaceFrom(c fiber.Ctx) (*workspace.Workspace, bool) {
	ws, ok := c.Locals(CtxWorkspaceKey).(*workspace.Workspace)
	return ws, ok && ws != nil
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
