package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"rateme.app/configs/configslog"
	"rateme.app/models"
	"rateme.app/pkg/flashmessages"
	"rateme.app/pkg/renderer"
	"rateme.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FormHandler serves the owner's dashboard: form list, builder and
// response viewer.
type FormHandler struct {
	forms     services.IFormService
	responses services.IResponseService
	baseURL   string
}

func NewFormHandler(forms services.IFormService, responses services.IResponseService, baseURL string) *FormHandler {
	return &FormHandler{forms: forms, responses: responses, baseURL: baseURL}
}

// Dashboard lists the owner's forms, newest first.
func (h *FormHandler) Dashboard(c *fiber.Ctx) error {
	ownerID, ok := c.Locals("userID").(uint)
	if !ok || ownerID == 0 {
		return c.Redirect("/login")
	}

	data := fiber.Map{
		"Title":   "Dashboard",
		"BaseURL": h.baseURL,
	}
	forms, err := h.forms.GetFormsForOwner(c.UserContext(), ownerID)
	if err != nil {
		configslog.Log.Error("Dashboard - forms could not be listed", zap.Uint("ownerID", ownerID), zap.Error(err))
		data[renderer.FlashErrorKeyView] = "Erreur lors du chargement des formulaires."
		forms = []models.Form{}
	}
	data["Forms"] = forms
	return renderer.Render(c, "dashboard/index", "", data)
}

func (h *FormHandler) ShowCreateForm(c *fiber.Ctx) error {
	return h.renderBuilder(c, services.NewFormDraft(), 0, "", http.StatusOK)
}

// CreateForm handles every button of the new-form builder. Editing actions
// re-render the draft; "save" persists it.
func (h *FormHandler) CreateForm(c *fiber.Ctx) error {
	ownerID, ok := c.Locals("userID").(uint)
	if !ok || ownerID == 0 {
		return c.Redirect("/login")
	}

	draft := parseDraft(c)
	edited, err := draft.ApplyAction(c.FormValue("action"))
	if err != nil { // unknown or out-of-range button
		return h.renderBuilder(c, draft, 0, err.Error(), http.StatusBadRequest)
	}
	// add/remove buttons: nothing is stored yet
	if edited {
		draft.Normalize()
		return h.renderBuilder(c, draft, 0, "", http.StatusOK)
	}

	form, err := h.forms.CreateForm(c.UserContext(), ownerID, draft)
	if err != nil {
		return h.renderBuilder(c, draft, 0, err.Error(), builderErrorStatus(err))
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey,
		fmt.Sprintf("Formulaire « %s » créé !", form.Title))
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func (h *FormHandler) ShowUpdateForm(c *fiber.Ctx) error {
	ownerID, ok := c.Locals("userID").(uint)
	if !ok || ownerID == 0 {
		return c.Redirect("/login")
	}
	formID, err := formIDParam(c)
	if err != nil {
		return redirectNotFound(c)
	}

	// foreign forms come back as not found too
	form, err := h.forms.GetFormForOwner(c.UserContext(), ownerID, formID)
	if err != nil {
		if !errors.Is(err, services.ErrFormNotFound) {
			configslog.Log.Error("Dashboard - form could not be loaded", zap.Uint("formID", formID), zap.Error(err))
		}
		return redirectNotFound(c)
	}
	return h.renderBuilder(c, services.DraftFromForm(form), form.ID, "", http.StatusOK)
}

// UpdateForm is CreateForm for an existing form. The public link and the
// owner never change.
func (h *FormHandler) UpdateForm(c *fiber.Ctx) error {
	ownerID, ok := c.Locals("userID").(uint)
	if !ok || ownerID == 0 {
		return c.Redirect("/login")
	}
	formID, err := formIDParam(c)
	if err != nil {
		return redirectNotFound(c)
	}

	draft := parseDraft(c)
	edited, err := draft.ApplyAction(c.FormValue("action"))
	if err != nil {
		return h.renderBuilder(c, draft, formID, err.Error(), http.StatusBadRequest)
	}
	if edited {
		draft.Normalize()
		return h.renderBuilder(c, draft, formID, "", http.StatusOK)
	}

	if err := h.forms.UpdateForm(c.UserContext(), ownerID, formID, draft); err != nil {
		if errors.Is(err, services.ErrFormNotFound) {
			return redirectNotFound(c)
		}
		return h.renderBuilder(c, draft, formID, err.Error(), builderErrorStatus(err))
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Formulaire mis à jour !")
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// ShowResponses is the read-only response viewer of one form.
func (h *FormHandler) ShowResponses(c *fiber.Ctx) error {
	ownerID, ok := c.Locals("userID").(uint)
	if !ok || ownerID == 0 {
		return c.Redirect("/login")
	}
	formID, err := formIDParam(c)
	if err != nil {
		return redirectNotFound(c)
	}

	form, responses, err := h.responses.ListResponses(c.UserContext(), ownerID, formID)
	if err != nil {
		if errors.Is(err, services.ErrFormNotFound) {
			return redirectNotFound(c)
		}
		// the form itself could not be read: back to the list
		if form == nil {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Erreur lors du chargement des réponses.")
			return c.Redirect("/dashboard", fiber.StatusSeeOther)
		}
		return renderer.Render(c, "dashboard/forms/responses", "", fiber.Map{
			"Title":                    "Réponses",
			"Form":                     form,
			"Responses":                []models.Response{},
			renderer.FlashErrorKeyView: "Erreur lors du chargement des réponses.",
		}, http.StatusInternalServerError)
	}

	return renderer.Render(c, "dashboard/forms/responses", "", fiber.Map{
		"Title":     "Réponses",
		"Form":      form,
		"Responses": responses,
	})
}

func (h *FormHandler) renderBuilder(c *fiber.Ctx, draft services.FormDraft, formID uint, errMsg string, status int) error {
	draft.Normalize()
	action := "/dashboard/forms/new"
	title := "Nouveau formulaire"
	if formID != 0 {
		action = fmt.Sprintf("/dashboard/forms/%d/edit", formID)
		title = "Modifier le formulaire"
	}
	data := fiber.Map{
		"Title":          title,
		"Draft":          draft,
		"FormID":         formID,
		"FormAction":     action,
		"CanAddQuestion": draft.CanAddQuestion(),
		"CanRemove":      draft.CanRemoveQuestion(),
		"MaxQuestions":   models.MaxQuestions,
	}
	if errMsg != "" {
		data[renderer.FlashErrorKeyView] = errMsg
	}
	return renderer.Render(c, "dashboard/forms/edit", "", data, status)
}

// parseDraft reads the builder fields. Repeated fields are read from the raw
// body because the form decoder drops empty values, and an empty question
// row is still a row.
func parseDraft(c *fiber.Ctx) services.FormDraft {
	args := c.Request().PostArgs()
	draft := services.FormDraft{
		Title:     string(args.Peek("title")),
		NoteLabel: string(args.Peek("note_label")),
	}
	for _, q := range args.PeekMulti("questions") {
		draft.Questions = append(draft.Questions, string(q))
	}

	labels := args.PeekMulti("link_labels")
	urls := args.PeekMulti("link_urls")
	n := len(labels)
	if len(urls) > n {
		n = len(urls)
	}
	for i := 0; i < n; i++ {
		var link models.ExternalLink
		if i < len(labels) {
			link.Label = string(labels[i])
		}
		if i < len(urls) {
			link.URL = string(urls[i])
		}
		draft.ExternalLinks = append(draft.ExternalLinks, link)
	}
	return draft
}

func formIDParam(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, services.ErrFormNotFound
	}
	return uint(id), nil
}

func redirectNotFound(c *fiber.Ctx) error {
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, services.ErrFormNotFound.Error())
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func builderErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrFormTitleRequired),
		errors.Is(err, services.ErrFormQuestionRequired),
		errors.Is(err, services.ErrFormQuestionCount),
		errors.Is(err, services.ErrFrmInvalidInput):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
