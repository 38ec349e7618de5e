package middlewares

import (
	"rateme.app/configs/configslog"
	"rateme.app/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

// SessionMiddleware exposes the session store and the resolved
// SessionContext to the rest of the request.
func SessionMiddleware(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(utils.SessionStoreLocalsKey, store)
		sess, err := utils.SessionStart(c)
		if err != nil {
			configslog.Log.Warn("Session could not be loaded", zap.Error(err))
			c.Locals(utils.SessionContextLocalsKey, utils.SessionContext{})
			return c.Next()
		}
		sc := utils.SessionContextFrom(sess)
		c.Locals(utils.SessionContextLocalsKey, sc)
		if sc.HasSession() {
			c.Locals("userID", sc.UserID)
			c.Locals("userName", sc.UserName)
		}
		return c.Next()
	}
}
