package middleware

import (
	"strings"
	"time"

	"syllabus-builder/internal/logger"
	"syllabus-builder/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	SessionTokenHeader  = "X-Session-Token"
	SessionIDKey        = "sessionID" // Key for storing the session id in fiber.Ctx locals
)

// Session ties every request to a workspace. A valid token is read from the cookie or
// a Bearer header; otherwise a new session is started and its token returned in both
// the cookie and the X-Session-Token header.
func Session(sessions service.SessionService, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token == "" {
			if authHeader := c.Get(AuthorizationHeader); strings.HasPrefix(authHeader, BearerSchema) {
				token = strings.TrimPrefix(authHeader, BearerSchema)
			}
		}

		if token != "" {
			claims, err := sessions.ValidateToken(token)
			if err == nil {
				c.Locals(SessionIDKey, claims.SessionID)
				return c.Next()
			}
			logger.Get().Debug("Session token invalid, starting a new session", zap.Error(err))
		}

		sessionID, newToken, err := sessions.NewSession()
		if err != nil {
			return err
		}
		c.Cookie(&fiber.Cookie{
			Name:     cookieName,
			Value:    newToken,
			Path:     "/",
			Expires:  time.Now().Add(sessions.TTL()),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		c.Set(SessionTokenHeader, newToken)
		c.Locals(SessionIDKey, sessionID)
		logger.Get().Debug("New session started", zap.String("session_id", sessionID))
		return c.Next()
	}
}

// SessionID returns the id stored by Session, or "" outside it.
func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(SessionIDKey).(string)
	return id
}
