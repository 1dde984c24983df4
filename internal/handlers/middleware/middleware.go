package middleware

import (
	"agency/config"
	"agency/internal/logger"
	"agency/internal/services"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const SESSION_LOCAL = "session"

type Middleware struct {
	sessions *services.SessionService
	limiter  *RateLimiter
	Config   config.Config
	log      logger.Logger
}

func New(sessions *services.SessionService, config config.Config) Middleware {
	return Middleware{
		sessions: sessions,
		limiter:  NewRateLimiter(config.ServerRateLimit, config.ServerRateBurst),
		Config:   config,
		log:      logger.New("middleware"),
	}
}

// anonymousSession stands in for a signed-in agent when authentication is disabled.
func (m Middleware) anonymousSession() services.Session {
	return services.Session{
		Login:       "anonymous",
		DisplayName: m.Config.AgentName,
		IsAdmin:     true,
	}
}

// AuthRequired resolves the bearer token into a session stored under SESSION_LOCAL.
func (m Middleware) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.Config.AuthEnabled {
			c.Locals(SESSION_LOCAL, m.anonymousSession())
			return c.Next()
		}

		log := m.log.Function("AuthRequired")

		token := BearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": "error", "error": "missing bearer token"})
		}

		session, found, err := m.sessions.Get(c.Context(), token)
		if err != nil {
			log.Er("failed to look up session", err)
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"message": "error", "error": "failed to verify session"})
		}
		if !found {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": "error", "error": "session expired or invalid"})
		}

		c.Locals(SESSION_LOCAL, session)
		return c.Next()
	}
}

// AdminRequired must run after AuthRequired.
func (m Middleware) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := CurrentSession(c)
		if !ok || !session.IsAdmin {
			m.log.Function("AdminRequired").Warn("Non-admin access attempt", "login", session.Login, "path", c.Path())
			return c.Status(fiber.StatusForbidden).
				JSON(fiber.Map{"message": "error", "error": "admin access required"})
		}
		return c.Next()
	}
}

func (m Middleware) RateLimit() fiber.Handler {
	return m.limiter.Handler()
}

func CurrentSession(c *fiber.Ctx) (services.Session, bool) {
	session, ok := c.Locals(SESSION_LOCAL).(services.Session)
	return session, ok
}

func BearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
