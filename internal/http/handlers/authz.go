package handlers

import (
	"strings"

	"annapurna/internal/domain"
	applog "annapurna/internal/log"
	"annapurna/internal/services"

	"github.com/gofiber/fiber/v2"
)

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(h[len("Bearer "):])
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

// RequireUser authenticates the bearer token and stashes the user in Locals.
// Missing, forged, and expired tokens all get a bare 401 before any service
// is touched.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearerToken(c)
		if tok == "" {
			return unauthorized(c)
		}
		u, err := auth.CurrentUser(tok)
		if err != nil {
			return err
		}
		if u == nil {
			applog.Security(c, "access.denied.token", nil)
			return unauthorized(c)
		}
		c.Locals("user", u)
		return c.Next()
	}
}

func requireAccountType(auth *services.AuthService, accountType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearerToken(c)
		if tok == "" {
			return unauthorized(c)
		}
		u, err := auth.CurrentUser(tok)
		if err != nil {
			return err
		}
		if u == nil {
			applog.Security(c, "access.denied.token", nil)
			return unauthorized(c)
		}
		if u.AccountType != accountType {
			applog.Security(c, "access.denied."+accountType, map[string]any{"user_id": u.ID})
			return unauthorized(c)
		}
		c.Locals("user", u)
		return c.Next()
	}
}

func RequireVendor(auth *services.AuthService) fiber.Handler {
	return requireAccountType(auth, domain.AccountVendor)
}

func RequireCustomer(auth *services.AuthService) fiber.Handler {
	return requireAccountType(auth, domain.AccountCustomer)
}
