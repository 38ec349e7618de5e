package services

import (
	"fmt"
	"strconv"
	"strings"

	"rateme.app/models"
	"rateme.app/repositories"
)

// Builder actions posted by the form editor buttons.
const (
	DraftActionSave           = "save"
	DraftActionAddQuestion    = "add_question"
	DraftActionRemoveQuestion = "remove_question"
	DraftActionAddLink        = "add_link"
	DraftActionRemoveLink     = "remove_link"
)

// FormDraft is the editable state of the form builder.
type FormDraft struct {
	Title         string
	Questions     []string
	NoteLabel     string
	ExternalLinks []models.ExternalLink
}

// NewFormDraft returns an empty draft with one question row and one link row.
func NewFormDraft() FormDraft {
	return FormDraft{
		Questions:     []string{""},
		ExternalLinks: []models.ExternalLink{{}},
	}
}

// DraftFromForm loads a persisted form into the builder.
func DraftFromForm(form *models.Form) FormDraft {
	draft := FormDraft{
		Title:         form.Title,
		Questions:     append([]string(nil), form.Questions...),
		NoteLabel:     form.NoteLabel,
		ExternalLinks: append([]models.ExternalLink(nil), form.ExternalLinks...),
	}
	draft.Normalize()
	return draft
}

// Normalize guarantees at least one question row and one link row.
func (d *FormDraft) Normalize() {
	if len(d.Questions) == 0 {
		d.Questions = []string{""}
	}
	if len(d.ExternalLinks) == 0 {
		d.ExternalLinks = []models.ExternalLink{{}}
	}
}

func (d *FormDraft) CanAddQuestion() bool {
	return len(d.Questions) < models.MaxQuestions
}

func (d *FormDraft) CanRemoveQuestion() bool {
	return len(d.Questions) > 1
}

// AddQuestion appends an empty question; no-op once MaxQuestions is reached.
func (d *FormDraft) AddQuestion() {
	if d.CanAddQuestion() {
		d.Questions = append(d.Questions, "")
	}
}

func (d *FormDraft) UpdateQuestion(idx int, value string) {
	if idx >= 0 && idx < len(d.Questions) {
		d.Questions[idx] = value
	}
}

// RemoveQuestion drops the question at idx; the last remaining one is kept.
func (d *FormDraft) RemoveQuestion(idx int) {
	if !d.CanRemoveQuestion() || idx < 0 || idx >= len(d.Questions) {
		return
	}
	d.Questions = append(d.Questions[:idx:idx], d.Questions[idx+1:]...)
}

func (d *FormDraft) AddExternalLink() {
	d.ExternalLinks = append(d.ExternalLinks, models.ExternalLink{})
}

func (d *FormDraft) UpdateExternalLink(idx int, label, url string) {
	if idx >= 0 && idx < len(d.ExternalLinks) {
		d.ExternalLinks[idx] = models.ExternalLink{Label: label, URL: url}
	}
}

// RemoveExternalLink drops the link row at idx. Removing the only row leaves
// a blank one so the editor always shows something to fill in.
func (d *FormDraft) RemoveExternalLink(idx int) {
	if idx < 0 || idx >= len(d.ExternalLinks) {
		return
	}
	d.ExternalLinks = append(d.ExternalLinks[:idx:idx], d.ExternalLinks[idx+1:]...)
	d.Normalize()
}

// CompleteExternalLinks returns the trimmed links having both a label and a URL.
func (d *FormDraft) CompleteExternalLinks() []models.ExternalLink {
	links := make([]models.ExternalLink, 0, len(d.ExternalLinks))
	for _, link := range d.ExternalLinks {
		link.Label = strings.TrimSpace(link.Label)
		link.URL = strings.TrimSpace(link.URL)
		if link.IsComplete() {
			links = append(links, link)
		}
	}
	return links
}

// ApplyAction runs an editor action such as "add_question" or
// "remove_link:2". It reports whether the action was an editing step
// (true) as opposed to a save request (false).
func (d *FormDraft) ApplyAction(action string) (bool, error) {
	name, arg, hasArg := strings.Cut(action, ":")
	idx := -1
	if hasArg {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return false, fmt.Errorf("%w: action %q", ErrFrmInvalidInput, action)
		}
		idx = n
	}

	switch name {
	case "", DraftActionSave:
		return false, nil
	case DraftActionAddQuestion:
		d.AddQuestion()
	case DraftActionRemoveQuestion:
		d.RemoveQuestion(idx)
	case DraftActionAddLink:
		d.AddExternalLink()
	case DraftActionRemoveLink:
		d.RemoveExternalLink(idx)
	default:
		return false, fmt.Errorf("%w: action %q", ErrFrmInvalidInput, action)
	}
	return true, nil
}

// ValidateFormDraft checks the builder constraints before anything is persisted.
func ValidateFormDraft(d FormDraft) error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrFormTitleRequired
	}
	if len(d.Questions) == 0 || len(d.Questions) > models.MaxQuestions {
		return ErrFormQuestionCount
	}
	for _, q := range d.Questions {
		if strings.TrimSpace(q) == "" {
			return ErrFormQuestionRequired
		}
	}
	return nil
}

func (d *FormDraft) fields() repositories.FormFields {
	questions := make([]string, len(d.Questions))
	for i, q := range d.Questions {
		questions[i] = strings.TrimSpace(q)
	}
	return repositories.FormFields{
		Title:         strings.TrimSpace(d.Title),
		Questions:     questions,
		NoteLabel:     strings.TrimSpace(d.NoteLabel),
		ExternalLinks: d.CompleteExternalLinks(),
	}
}
