package handlers

import (
	"errors"

	"rateme.app/configs/configslog"
	"rateme.app/pkg/flashmessages"
	"rateme.app/pkg/renderer"
	"rateme.app/services"
	"rateme.app/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const genericAuthError = "Une erreur est survenue, réessaie plus tard."

// AuthHandler serves the login, sign-up and confirmation pages.
type AuthHandler struct {
	service services.IAuthService
}

func NewAuthHandler(service services.IAuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Home is the landing page: the login form, or the dashboard for a signed-in user.
func (h *AuthHandler) Home(c *fiber.Ctx) error {
	if utils.CurrentSession(c).HasSession() {
		return c.Redirect("/dashboard", fiber.StatusFound)
	}
	return h.ShowLogin(c)
}

func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	return renderer.Render(c, "auth/login", "", fiber.Map{
		"Title": "Connexion",
		"Email": "",
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := h.service.SignIn(c.UserContext(), email, password)
	if err != nil {
		status := fiber.StatusUnauthorized
		if !isAuthError(err) {
			configslog.Log.Error("Sign-in failed", zap.Error(err))
			status = fiber.StatusInternalServerError
		}
		return renderer.Render(c, "auth/login", "", fiber.Map{
			"Title":                    "Connexion",
			"Email":                    email,
			renderer.FlashErrorKeyView: authErrorMessage(err),
		}, status)
	}

	if err := utils.LoginUser(c, user); err != nil {
		configslog.Log.Error("Session could not be started", zap.Uint("userID", user.ID), zap.Error(err))
		return renderer.Render(c, "auth/login", "", fiber.Map{
			"Title":                    "Connexion",
			"Email":                    email,
			renderer.FlashErrorKeyView: genericAuthError,
		}, fiber.StatusInternalServerError)
	}
	return c.Redirect("/dashboard", fiber.StatusFound)
}

func (h *AuthHandler) ShowSignup(c *fiber.Ctx) error {
	return renderer.Render(c, "auth/signup", "", fiber.Map{
		"Title": "Inscription",
		"Input": services.SignUpInput{},
	})
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var input services.SignUpInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.Render(c, "auth/signup", "", fiber.Map{
			"Title":                    "Inscription",
			"Input":                    input,
			renderer.FlashErrorKeyView: "Données d'inscription invalides.",
		}, fiber.StatusBadRequest)
	}

	_, err := h.service.SignUp(c.UserContext(), input)
	switch {
	case err == nil:
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey,
			"Compte créé ! Vérifie ta boîte mail pour confirmer ton adresse.")
		return c.Redirect("/login", fiber.StatusSeeOther)
	case errors.Is(err, services.ErrConfirmationMailFailed):
		// the account exists, only the mail is missing
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	status := fiber.StatusUnprocessableEntity
	if !isAuthError(err) {
		configslog.Log.Error("Sign-up failed", zap.String("email", input.Email), zap.Error(err))
		status = fiber.StatusInternalServerError
	}
	input.Password, input.PasswordConfirm = "", ""
	return renderer.Render(c, "auth/signup", "", fiber.Map{
		"Title":                    "Inscription",
		"Input":                    input,
		renderer.FlashErrorKeyView: authErrorMessage(err),
	}, status)
}

// Confirm consumes the token of a confirmation link.
func (h *AuthHandler) Confirm(c *fiber.Ctx) error {
	user, err := h.service.ConfirmEmail(c.UserContext(), c.Query("token"))
	if err != nil {
		if !isAuthError(err) {
			configslog.Log.Error("Email confirmation failed", zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, authErrorMessage(err))
		return c.Redirect("/login", fiber.StatusFound)
	}
	configslog.SLog.Infof("Email confirmed for user %d", user.ID)
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Adresse confirmée, tu peux te connecter.")
	return c.Redirect(services.ConfirmationRedirectPath, fiber.StatusFound)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sc := utils.CurrentSession(c)
	if err := utils.LogoutUser(c); err != nil {
		configslog.Log.Warn("Session could not be destroyed", zap.Error(err))
	}
	if sc.HasSession() {
		h.service.SignOut(c.UserContext(), sc.UserID)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func isAuthError(err error) bool {
	var authErr services.AuthServiceError
	return errors.As(err, &authErr)
}

func authErrorMessage(err error) string {
	var authErr services.AuthServiceError
	if errors.As(err, &authErr) {
		return authErr.Error()
	}
	return genericAuthError
}
