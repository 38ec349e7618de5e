package configs

import (
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
)

const sessionCookieName = "rateme_session"

// SetupSession creates the cookie-backed session store shared by the middlewares.
func SetupSession(cfg AppConfig) *session.Store {
	return session.New(session.Config{
		Expiration:     7 * 24 * time.Hour,
		KeyLookup:      "cookie:" + sessionCookieName,
		CookieHTTPOnly: true,
		CookieSecure:   cfg.CookieSecure,
		CookieSameSite: "Lax",
		CookiePath:     "/",
	})
}
