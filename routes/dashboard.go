package routes

import (
	handlers "rateme.app/handlers/dashboard"
	"rateme.app/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes defines the owner-only /dashboard routes.
func registerDashboardRoutes(app *fiber.App, svc Services, baseURL string) {
	formHandler := handlers.NewFormHandler(svc.Forms, svc.Responses, baseURL)

	dashboardGroup := app.Group("/dashboard", middlewares.AuthMiddleware)

	dashboardGroup.Get("/", formHandler.Dashboard)                        // GET /dashboard
	dashboardGroup.Get("/forms/new", formHandler.ShowCreateForm)          // GET /dashboard/forms/new
	dashboardGroup.Post("/forms/new", formHandler.CreateForm)             // POST /dashboard/forms/new
	dashboardGroup.Get("/forms/:id/edit", formHandler.ShowUpdateForm)     // GET /dashboard/forms/{id}/edit
	dashboardGroup.Post("/forms/:id/edit", formHandler.UpdateForm)        // POST /dashboard/forms/{id}/edit
	dashboardGroup.Get("/forms/:id/responses", formHandler.ShowResponses) // GET /dashboard/forms/{id}/responses
}
