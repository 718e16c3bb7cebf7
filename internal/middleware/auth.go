package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/roomfinder/roomfinder-api/internal/services"
	"github.com/roomfinder/roomfinder-api/internal/types"
)

const sessionKey = "session"

// RequireSession validates the bearer token and stores the session in request locals.
func RequireSession(auth services.Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return types.AuthError("authentication required", nil)
		}

		session, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			return types.AsAuthError(err)
		}

		c.Locals(sessionKey, session)
		return c.Next()
	}
}

// RequireRole rejects sessions whose role is not one of roles. It must run after RequireSession.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := SessionFrom(c)
		if session == nil {
			return types.AuthError("authentication required", nil)
		}
		for _, role := range roles {
			if session.Role == role {
				return c.Next()
			}
		}
		return types.ForbiddenError(session.Role + " role cannot perform this action")
	}
}

// SessionFrom returns the session stored by RequireSession, or nil.
func SessionFrom(c *fiber.Ctx) *types.Session {
	session, _ := c.Locals(sessionKey).(*types.Session)
	return session
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
