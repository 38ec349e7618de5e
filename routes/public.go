package routes

import (
	handlers "rateme.app/handlers/public"
	"rateme.app/services"

	"github.com/gofiber/fiber/v2"
)

func registerPublicFormRoutes(app *fiber.App, publicService services.IPublicFormService) {
	publicHandler := handlers.NewPublicFormHandler(publicService)

	app.Get("/form/:public_link", publicHandler.ShowForm)
	app.Post("/form/:public_link", publicHandler.SubmitForm)
}
