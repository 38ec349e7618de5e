package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"rateme.app/configs/configslog"
	"rateme.app/pkg/renderer"
	"rateme.app/services"
	"rateme.app/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const publicLayout = "layouts/public"

// PublicFormHandler serves /form/:public_link to anonymous visitors.
type PublicFormHandler struct {
	service services.IPublicFormService
}

func NewPublicFormHandler(service services.IPublicFormService) *PublicFormHandler {
	return &PublicFormHandler{service: service}
}

// ShowForm renders the questionnaire. A visitor who already answered sees the
// thank-you notice above it and may answer again.
func (h *PublicFormHandler) ShowForm(c *fiber.Ctx) error {
	link := c.Params("public_link")
	submission := h.service.Open(c.UserContext(), link)
	if submission.NotFound() {
		return renderNotFound(c, submission)
	}
	if utils.HasSessionFlag(c, submittedFlagKey(link)) {
		submission.MarkSubmitted()
	}
	return renderSubmission(c, submission, http.StatusOK)
}

// SubmitForm stores one response. The thank-you interstitial is shown only
// in the reply to a successful submission.
func (h *PublicFormHandler) SubmitForm(c *fiber.Ctx) error {
	link := c.Params("public_link")
	submission := h.service.Open(c.UserContext(), link)
	if submission.NotFound() {
		return renderNotFound(c, submission)
	}

	// one answers_<i> field per question; extra fields are ignored
	for i := range submission.Answers {
		submission.SetAnswer(i, c.FormValue(fmt.Sprintf("answers_%d", i)))
	}
	submission.SetClientEmail(c.FormValue("client_email"))
	if note, err := strconv.Atoi(c.FormValue("note")); err == nil {
		submission.SetNote(note)
	}

	if err := submission.Submit(c.UserContext()); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrSubmissionIncomplete) {
			status = http.StatusUnprocessableEntity
		}
		return renderSubmission(c, submission, status)
	}

	// remembered for the visitor's later visits only, never checked on POST
	if err := utils.SetSessionFlag(c, submittedFlagKey(link)); err != nil {
		configslog.Log.Warn("Submitted flag could not be stored", zap.String("public_link", link), zap.Error(err))
	}
	return renderSubmission(c, submission, http.StatusOK)
}

func renderSubmission(c *fiber.Ctx, submission *services.PublicSubmission, status int) error {
	title := "Formulaire"
	if submission.Form != nil {
		title = submission.Form.Title
	}
	return renderer.Render(c, "public/form", publicLayout, fiber.Map{
		"Title":      title,
		"Submission": submission,
		"Notes":      []int{1, 2, 3, 4, 5},
	}, status)
}

func renderNotFound(c *fiber.Ctx, submission *services.PublicSubmission) error {
	return renderer.Render(c, "errors/form_not_found", publicLayout, fiber.Map{
		"Title":   "Formulaire introuvable",
		"Message": submission.ErrorMessage,
	}, http.StatusNotFound)
}

func submittedFlagKey(link string) string {
	return "submitted:" + link
}
