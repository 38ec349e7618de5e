package routes

import (
	handlers "rateme.app/handlers/auth"
	"rateme.app/middlewares"
	"rateme.app/services"

	"github.com/gofiber/fiber/v2"
)

func registerAuthRoutes(app *fiber.App, authService services.IAuthService) {
	authHandler := handlers.NewAuthHandler(authService)

	app.Get("/", authHandler.Home)

	guestRoutes := app.Group("")
	guestRoutes.Get("/login", middlewares.GuestMiddleware, authHandler.ShowLogin)
	guestRoutes.Post("/login", middlewares.GuestMiddleware, authHandler.Login)
	guestRoutes.Get("/signup", middlewares.GuestMiddleware, authHandler.ShowSignup)
	guestRoutes.Post("/signup", middlewares.GuestMiddleware, authHandler.Signup)

	app.Get("/auth/confirm", authHandler.Confirm)
	app.Post("/logout", authHandler.Logout)
}
