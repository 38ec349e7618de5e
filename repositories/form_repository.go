package repositories

import (
	"context"
	"errors"

	"rateme.app/configs/configslog"
	"rateme.app/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FormFields is the mutable part of a form. Owner and public link never
// change after creation.
type FormFields struct {
	Title         string
	Questions     []string
	NoteLabel     string
	ExternalLinks []models.ExternalLink
}

// IFormRepository form database operations.
type IFormRepository interface {
	Create(ctx context.Context, form *models.Form) error
	Update(ctx context.Context, id uint, ownerID uint, fields FormFields) error
	FindByID(ctx context.Context, id uint) (*models.Form, error)
	FindAllByOwner(ctx context.Context, ownerID uint) ([]models.Form, error)
	FindByPublicLink(ctx context.Context, publicLink string) (*models.Form, error)
}

// FormRepository implements IFormRepository on gorm.
type FormRepository struct {
	db *gorm.DB
}

// NewFormRepository creates a FormRepository on db.
func NewFormRepository(db *gorm.DB) IFormRepository {
	return &FormRepository{db: db}
}

// Create inserts a form. Duplicate public links surface as gorm.ErrDuplicatedKey.
func (r *FormRepository) Create(ctx context.Context, form *models.Form) error {
	if form == nil || form.OwnerID == 0 || form.PublicLink == "" {
		return errors.New("form without owner or public link cannot be created")
	}
	if form.ExternalLinks == nil {
		form.ExternalLinks = datatypes.JSONSlice[models.ExternalLink]{}
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(form).Error
}

// Update writes fields to the form id if it belongs to ownerID.
func (r *FormRepository) Update(ctx context.Context, id uint, ownerID uint, fields FormFields) error {
	if id == 0 || ownerID == 0 {
		return ErrNotFound
	}
	links := fields.ExternalLinks
	if links == nil {
		links = []models.ExternalLink{}
	}
	updates := map[string]interface{}{
		"title":          fields.Title,
		"questions":      datatypes.NewJSONSlice(fields.Questions),
		"note_label":     fields.NoteLabel,
		"external_links": datatypes.NewJSONSlice(links),
	}
	result := r.db.WithContext(ctx).Model(&models.Form{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(updates)
	if result.Error != nil {
		configslog.Log.Error("FormRepository.Update: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FormRepository) FindByID(ctx context.Context, id uint) (*models.Form, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var form models.Form
	err := r.db.WithContext(ctx).First(&form, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("FormRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &form, nil
}

// FindAllByOwner lists the owner's forms, newest first.
func (r *FormRepository) FindAllByOwner(ctx context.Context, ownerID uint) ([]models.Form, error) {
	forms := []models.Form{}
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").Order("id desc").
		Find(&forms).Error
	if err != nil {
		configslog.Log.Error("FormRepository.FindAllByOwner: DB error", zap.Uint("ownerID", ownerID), zap.Error(err))
		return nil, err
	}
	return forms, nil
}

// FindByPublicLink resolves a public link. Anything but exactly one match is
// reported as ErrNotFound.
func (r *FormRepository) FindByPublicLink(ctx context.Context, publicLink string) (*models.Form, error) {
	if publicLink == "" {
		return nil, ErrNotFound
	}
	var forms []models.Form
	err := r.db.WithContext(ctx).Where("public_link = ?", publicLink).Limit(2).Find(&forms).Error
	if err != nil {
		configslog.Log.Error("FormRepository.FindByPublicLink: DB error", zap.String("public_link", publicLink), zap.Error(err))
		return nil, err
	}
	switch len(forms) {
	case 1:
		return &forms[0], nil
	case 0:
		return nil, ErrNotFound
	default:
		configslog.Log.Warn("FormRepository.FindByPublicLink: public link is not unique", zap.String("public_link", publicLink))
		return nil, ErrNotFound
	}
}

var _ IFormRepository = (*FormRepository)(nil)
