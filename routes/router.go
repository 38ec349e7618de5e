package routes

import (
	"errors"

	"rateme.app/configs/configslog"
	"rateme.app/middlewares"
	"rateme.app/pkg/renderer"
	"rateme.app/repositories"
	"rateme.app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services groups the application services the handlers depend on.
type Services struct {
	Auth      services.IAuthService
	Forms     services.IFormService
	Responses services.IResponseService
	Public    services.IPublicFormService
}

// NewServices wires the repositories and services on top of db.
func NewServices(db *gorm.DB, mailer services.Mailer, events *services.SessionEvents, baseURL string) Services {
	userRepo := repositories.NewUserRepository(db)
	formRepo := repositories.NewFormRepository(db)
	responseRepo := repositories.NewResponseRepository(db)

	formService := services.NewFormService(formRepo)
	return Services{
		Auth:      services.NewAuthService(userRepo, mailer, events, baseURL),
		Forms:     formService,
		Responses: services.NewResponseService(formService, responseRepo),
		Public:    services.NewPublicFormService(formRepo, responseRepo),
	}
}

// SetupRoutes registers the middleware stack and every route of the app.
func SetupRoutes(app *fiber.App, store *session.Store, svc Services, baseURL string) {
	app.Use(recoverMiddleware.New())
	app.Use(logger.New())
	app.Use(middlewares.SessionMiddleware(store))

	registerAuthRoutes(app, svc.Auth)
	registerDashboardRoutes(app, svc, baseURL)
	registerPublicFormRoutes(app, svc.Public)

	// anything else goes back to the landing page
	app.Use(func(c *fiber.Ctx) error {
		return c.Redirect("/", fiber.StatusFound)
	})
}

// ErrorHandler renders unhandled errors as an HTML page.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Une erreur inattendue est survenue."
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}
	if code >= fiber.StatusInternalServerError {
		configslog.Log.Error("Unhandled request error", zap.String("path", c.Path()), zap.Error(err))
	}

	renderErr := renderer.Render(c, "errors/error", "", fiber.Map{
		"Title":   "Erreur",
		"Code":    code,
		"Message": message,
	}, code)
	if renderErr != nil {
		return c.Status(code).SendString(message)
	}
	return nil
}
