package services

import (
	"context"
	"errors"
	"strings"

	"rateme.app/configs/configslog"
	"rateme.app/models"
	"rateme.app/repositories"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// SubmissionError is a user-facing error of the public submission workflow.
type SubmissionError string

func (e SubmissionError) Error() string { return string(e) }

const (
	ErrSubmissionFormNotFound SubmissionError = "Ce formulaire n'existe pas ou n'est plus disponible."
	ErrSubmissionIncomplete   SubmissionError = "Merci de répondre à toutes les questions."
	ErrSubmissionNotReady     SubmissionError = "Le formulaire n'est pas prêt à être envoyé."
	ErrSubmissionFailed       SubmissionError = "Erreur"
)

// SubmissionState is a step of the public submission workflow.
type SubmissionState string

const (
	SubmissionLoading    SubmissionState = "loading"
	SubmissionReady      SubmissionState = "ready"
	SubmissionSubmitting SubmissionState = "submitting"
	SubmissionSubmitted  SubmissionState = "submitted"
	SubmissionErrored    SubmissionState = "error"
)

// FormFinder resolves public links.
type FormFinder interface {
	FindByPublicLink(ctx context.Context, publicLink string) (*models.Form, error)
}

// ResponseCreator persists responses.
type ResponseCreator interface {
	Create(ctx context.Context, response *models.Response) error
}

// PublicSubmission is one visitor's pass through a public form:
// Loading -> Error | Ready -> Submitting -> Ready (with error) | Submitted.
//
// Submitted and ShowThanks are separate so the thank-you interstitial can be
// dismissed without forgetting that the form was sent.
type PublicSubmission struct {
	forms     FormFinder
	responses ResponseCreator

	PublicLink   string
	State        SubmissionState
	Form         *models.Form
	Answers      []string
	ClientEmail  string
	Note         int
	ErrorMessage string
	Submitted    bool
	ShowThanks   bool
}

// NewPublicSubmission starts a workflow in the Loading state.
func NewPublicSubmission(forms FormFinder, responses ResponseCreator, publicLink string) *PublicSubmission {
	return &PublicSubmission{
		forms:      forms,
		responses:  responses,
		PublicLink: publicLink,
		State:      SubmissionLoading,
	}
}

// Load resolves the public link. Missing, duplicated and unreadable forms all
// end in the same Error state and message.
func (s *PublicSubmission) Load(ctx context.Context) error {
	form, err := s.forms.FindByPublicLink(ctx, s.PublicLink)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			configslog.Log.Error("Public form could not be loaded", zap.String("public_link", s.PublicLink), zap.Error(err))
		}
		s.State = SubmissionErrored
		s.ErrorMessage = ErrSubmissionFormNotFound.Error()
		return err
	}
	s.Form = form
	s.Answers = make([]string, len(form.Questions))
	s.State = SubmissionReady
	return nil
}

// NotFound reports whether the workflow ended because the form is unavailable.
func (s *PublicSubmission) NotFound() bool {
	return s.State == SubmissionErrored
}

func (s *PublicSubmission) SetAnswer(idx int, value string) {
	if idx >= 0 && idx < len(s.Answers) {
		s.Answers[idx] = value
	}
}

func (s *PublicSubmission) SetClientEmail(email string) {
	s.ClientEmail = email
}

// SetNote records the rating. Values outside 1-5, and any value on a form
// without a note label, leave the rating unset.
func (s *PublicSubmission) SetNote(note int) {
	if s.Form == nil || !s.Form.HasNote() || note < models.MinNote || note > models.MaxNote {
		s.Note = 0
		return
	}
	s.Note = note
}

// MarkSubmitted restores the post-submission view without the interstitial.
func (s *PublicSubmission) MarkSubmitted() {
	if s.State == SubmissionReady {
		s.Submitted = true
	}
}

// DismissThanks closes the thank-you interstitial.
func (s *PublicSubmission) DismissThanks() {
	s.ShowThanks = false
}

// Submit validates the answers and writes exactly one response. Validation
// failures never reach the repository. On persistence failure the answers
// are kept so the visitor can retry.
func (s *PublicSubmission) Submit(ctx context.Context) error {
	if s.State != SubmissionReady || s.Form == nil {
		return ErrSubmissionNotReady
	}
	s.ErrorMessage = ""

	for i := range s.Form.Questions {
		if i >= len(s.Answers) || strings.TrimSpace(s.Answers[i]) == "" {
			s.ErrorMessage = ErrSubmissionIncomplete.Error()
			return ErrSubmissionIncomplete
		}
	}

	s.State = SubmissionSubmitting
	response := &models.Response{
		FormID:    s.Form.ID,
		Answers:   datatypes.NewJSONSlice(append([]string(nil), s.Answers[:len(s.Form.Questions)]...)),
		Questions: datatypes.NewJSONSlice(append([]string(nil), s.Form.Questions...)),
	}
	if email := strings.TrimSpace(s.ClientEmail); email != "" {
		response.ClientEmail = &email
	}
	if s.Form.HasNote() && s.Note >= models.MinNote && s.Note <= models.MaxNote {
		note := s.Note
		response.Note = &note
	}

	if err := s.responses.Create(ctx, response); err != nil {
		configslog.Log.Error("Response could not be saved", zap.Uint("formID", s.Form.ID), zap.Error(err))
		s.State = SubmissionReady
		s.ErrorMessage = persistenceMessage(err)
		if s.ErrorMessage == "" {
			s.ErrorMessage = ErrSubmissionFailed.Error()
		}
		return errors.Join(ErrSubmissionFailed, err)
	}

	configslog.SLog.Infof("Response %d saved for form %d", response.ID, s.Form.ID)
	s.State = SubmissionSubmitted
	s.Submitted = true
	s.ShowThanks = true
	return nil
}

// IPublicFormService opens public submission workflows.
type IPublicFormService interface {
	Open(ctx context.Context, publicLink string) *PublicSubmission
}

// PublicFormService implements IPublicFormService on the two repositories.
type PublicFormService struct {
	forms     FormFinder
	responses ResponseCreator
}

// NewPublicFormService creates a PublicFormService.
func NewPublicFormService(forms FormFinder, responses ResponseCreator) *PublicFormService {
	return &PublicFormService{forms: forms, responses: responses}
}

// Open starts a workflow for publicLink and loads its form.
func (s *PublicFormService) Open(ctx context.Context, publicLink string) *PublicSubmission {
	submission := NewPublicSubmission(s.forms, s.responses, publicLink)
	_ = submission.Load(ctx)
	return submission
}

var _ IPublicFormService = (*PublicFormService)(nil)
