package services

import (
	"context"

	"rateme.app/configs/configslog"
	"rateme.app/models"
	"rateme.app/repositories"

	"go.uber.org/zap"
)

// IResponseService read access to the responses of a form.
type IResponseService interface {
	ListResponses(ctx context.Context, ownerID uint, formID uint) (*models.Form, []models.Response, error)
}

// ResponseService implements IResponseService.
type ResponseService struct {
	forms     IFormService
	responses repositories.IResponseRepository
}

// NewResponseService creates a ResponseService.
func NewResponseService(forms IFormService, responses repositories.IResponseRepository) *ResponseService {
	return &ResponseService{forms: forms, responses: responses}
}

// ListResponses returns the form and its responses, newest first. Only the
// owner of the form may read them.
func (s *ResponseService) ListResponses(ctx context.Context, ownerID uint, formID uint) (*models.Form, []models.Response, error) {
	form, err := s.forms.GetFormForOwner(ctx, ownerID, formID)
	if err != nil {
		return nil, nil, err
	}
	responses, err := s.responses.FindAllByFormID(ctx, form.ID)
	if err != nil {
		configslog.Log.Error("Responses could not be listed", zap.Uint("formID", formID), zap.Error(err))
		return form, nil, err
	}
	return form, responses, nil
}

var _ IResponseService = (*ResponseService)(nil)
