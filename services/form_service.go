package services

import (
	"context"
	"errors"
	"fmt"

	"rateme.app/configs/configslog"
	"rateme.app/models"
	"rateme.app/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FormServiceError is a user-facing form builder error.
type FormServiceError string

func (e FormServiceError) Error() string { return string(e) }

const (
	ErrFormNotFound            FormServiceError = "Formulaire introuvable."
	ErrFormCreationFailed      FormServiceError = "Le formulaire n'a pas pu être créé"
	ErrFormUpdateFailed        FormServiceError = "Le formulaire n'a pas pu être enregistré"
	ErrFrmInvalidInput         FormServiceError = "Données de formulaire invalides"
	ErrFormTitleRequired       FormServiceError = "Le titre est obligatoire."
	ErrFormQuestionRequired    FormServiceError = "Toutes les questions sont obligatoires."
	ErrFormQuestionCount       FormServiceError = "Un formulaire contient de 1 à 5 questions."
	ErrFrmLinkGenerationFailed FormServiceError = "Impossible de générer un lien public unique."
)

const publicLinkAttempts = 3

// IFormService form builder operations.
type IFormService interface {
	CreateForm(ctx context.Context, ownerID uint, draft FormDraft) (*models.Form, error)
	UpdateForm(ctx context.Context, ownerID uint, formID uint, draft FormDraft) error
	GetFormsForOwner(ctx context.Context, ownerID uint) ([]models.Form, error)
	GetFormForOwner(ctx context.Context, ownerID uint, formID uint) (*models.Form, error)
}

// FormService implements IFormService.
type FormService struct {
	repo          repositories.IFormRepository
	newPublicLink func() string
}

// NewFormService creates a FormService backed by repo.
func NewFormService(repo repositories.IFormRepository) *FormService {
	return &FormService{repo: repo, newPublicLink: uuid.NewString}
}

// CreateForm validates the draft and stores it under a fresh public link.
func (s *FormService) CreateForm(ctx context.Context, ownerID uint, draft FormDraft) (*models.Form, error) {
	if ownerID == 0 {
		return nil, fmt.Errorf("%w: owner missing", ErrFrmInvalidInput)
	}
	if err := ValidateFormDraft(draft); err != nil {
		return nil, err
	}
	fields := draft.fields()

	for attempt := 1; attempt <= publicLinkAttempts; attempt++ {
		form := &models.Form{
			OwnerID:       ownerID,
			Title:         fields.Title,
			Questions:     datatypes.NewJSONSlice(fields.Questions),
			NoteLabel:     fields.NoteLabel,
			PublicLink:    s.newPublicLink(),
			ExternalLinks: datatypes.NewJSONSlice(fields.ExternalLinks),
		}
		err := s.repo.Create(ctx, form)
		if err == nil {
			configslog.SLog.Infof("Form created: ID %d, title %q, owner %d", form.ID, form.Title, ownerID)
			return form, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			configslog.Log.Warn("Public link collision, retrying", zap.Int("attempt", attempt), zap.Uint("ownerID", ownerID))
			continue
		}
		configslog.Log.Error("Form could not be created", zap.Uint("ownerID", ownerID), zap.Error(err))
		return nil, fmt.Errorf("%w: %s", ErrFormCreationFailed, persistenceMessage(err))
	}
	return nil, ErrFrmLinkGenerationFailed
}

// UpdateForm rewrites the mutable fields of one of the owner's forms.
func (s *FormService) UpdateForm(ctx context.Context, ownerID uint, formID uint, draft FormDraft) error {
	if ownerID == 0 || formID == 0 {
		return fmt.Errorf("%w: owner or form missing", ErrFrmInvalidInput)
	}
	if err := ValidateFormDraft(draft); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, formID, ownerID, draft.fields()); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrFormNotFound
		}
		configslog.Log.Error("Form could not be updated", zap.Uint("formID", formID), zap.Uint("ownerID", ownerID), zap.Error(err))
		return fmt.Errorf("%w: %s", ErrFormUpdateFailed, persistenceMessage(err))
	}
	configslog.SLog.Infof("Form updated: ID %d (owner %d)", formID, ownerID)
	return nil
}

// GetFormsForOwner lists the owner's forms, newest first.
func (s *FormService) GetFormsForOwner(ctx context.Context, ownerID uint) ([]models.Form, error) {
	if ownerID == 0 {
		return nil, fmt.Errorf("%w: owner missing", ErrFrmInvalidInput)
	}
	return s.repo.FindAllByOwner(ctx, ownerID)
}

// GetFormForOwner returns the form only if ownerID owns it. Foreign forms are
// reported as not found.
func (s *FormService) GetFormForOwner(ctx context.Context, ownerID uint, formID uint) (*models.Form, error) {
	form, err := s.repo.FindByID(ctx, formID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	if form.OwnerID != ownerID {
		return nil, ErrFormNotFound
	}
	return form, nil
}

var _ IFormService = (*FormService)(nil)
