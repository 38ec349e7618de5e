package middlewares

import (
	"rateme.app/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware lets signed-in users through and sends everyone else to the
// login page.
func AuthMiddleware(c *fiber.Ctx) error {
	sc := utils.CurrentSession(c)
	if !sc.HasSession() {
		return c.Redirect("/login", fiber.StatusFound)
	}
	c.Locals("userID", sc.UserID)
	return c.Next()
}

// GuestMiddleware keeps signed-in users away from the login and sign-up pages.
func GuestMiddleware(c *fiber.Ctx) error {
	if utils.CurrentSession(c).HasSession() {
		return c.Redirect("/dashboard", fiber.StatusFound)
	}
	return c.Next()
}
