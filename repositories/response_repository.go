package repositories

import (
	"context"
	"errors"

	"rateme.app/configs/configslog"
	"rateme.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IResponseRepository response database operations.
type IResponseRepository interface {
	Create(ctx context.Context, response *models.Response) error
	FindAllByFormID(ctx context.Context, formID uint) ([]models.Response, error)
}

// ResponseRepository implements IResponseRepository on gorm.
type ResponseRepository struct {
	db *gorm.DB
}

// NewResponseRepository creates a ResponseRepository on db.
func NewResponseRepository(db *gorm.DB) IResponseRepository {
	return &ResponseRepository{db: db}
}

func (r *ResponseRepository) Create(ctx context.Context, response *models.Response) error {
	if response == nil || response.FormID == 0 {
		return errors.New("response without form cannot be created")
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(response).Error
}

// FindAllByFormID lists the responses of a form, newest first.
func (r *ResponseRepository) FindAllByFormID(ctx context.Context, formID uint) ([]models.Response, error) {
	responses := []models.Response{}
	err := r.db.WithContext(ctx).
		Where("form_id = ?", formID).
		Order("created_at desc").Order("id desc").
		Find(&responses).Error
	if err != nil {
		configslog.Log.Error("ResponseRepository.FindAllByFormID: DB error", zap.Uint("formID", formID), zap.Error(err))
		return nil, err
	}
	return responses, nil
}

var _ IResponseRepository = (*ResponseRepository)(nil)
