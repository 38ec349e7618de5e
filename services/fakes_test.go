package services

import (
	"context"
	"sync"

	"rateme.app/models"
	"rateme.app/repositories"
)

type fakeFormRepo struct {
	mu          sync.Mutex
	forms       map[uint]*models.Form
	nextID      uint
	createErrs  []error
	createCalls int
	updateCalls int
	updateErr   error
	findErr     error
}

func newFakeFormRepo() *fakeFormRepo {
	return &fakeFormRepo{forms: map[uint]*models.Form{}}
}

func (r *fakeFormRepo) Create(_ context.Context, form *models.Form) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		if err != nil {
			return err
		}
	}
	r.nextID++
	form.ID = r.nextID
	stored := *form
	r.forms[form.ID] = &stored
	return nil
}

func (r *fakeFormRepo) Update(_ context.Context, id uint, ownerID uint, fields repositories.FormFields) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	if r.updateErr != nil {
		return r.updateErr
	}
	form, ok := r.forms[id]
	if !ok || form.OwnerID != ownerID {
		return repositories.ErrNotFound
	}
	form.Title = fields.Title
	form.Questions = fields.Questions
	form.NoteLabel = fields.NoteLabel
	form.ExternalLinks = fields.ExternalLinks
	return nil
}

func (r *fakeFormRepo) FindByID(_ context.Context, id uint) (*models.Form, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	form, ok := r.forms[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *form
	return &copied, nil
}

func (r *fakeFormRepo) FindAllByOwner(_ context.Context, ownerID uint) ([]models.Form, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	forms := []models.Form{}
	for id := r.nextID; id > 0; id-- {
		if form, ok := r.forms[id]; ok && form.OwnerID == ownerID {
			forms = append(forms, *form)
		}
	}
	return forms, nil
}

func (r *fakeFormRepo) FindByPublicLink(_ context.Context, publicLink string) (*models.Form, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	var match *models.Form
	for _, form := range r.forms {
		if form.PublicLink == publicLink {
			if match != nil {
				return nil, repositories.ErrNotFound
			}
			match = form
		}
	}
	if match == nil {
		return nil, repositories.ErrNotFound
	}
	copied := *match
	return &copied, nil
}

type fakeResponseRepo struct {
	mu        sync.Mutex
	created   []models.Response
	createErr error
	calls     int
}

func (r *fakeResponseRepo) Create(_ context.Context, response *models.Response) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.createErr != nil {
		return r.createErr
	}
	response.ID = uint(len(r.created) + 1)
	r.created = append(r.created, *response)
	return nil
}

func (r *fakeResponseRepo) FindAllByFormID(_ context.Context, formID uint) ([]models.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Response{}
	for i := len(r.created) - 1; i >= 0; i-- {
		if r.created[i].FormID == formID {
			out = append(out, r.created[i])
		}
	}
	return out, nil
}

var (
	_ repositories.IFormRepository     = (*fakeFormRepo)(nil)
	_ repositories.IResponseRepository = (*fakeResponseRepo)(nil)
)
