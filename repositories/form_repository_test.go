package repositories

import (
	"context"
	"errors"
	"testing"

	"rateme.app/models"
	"rateme.app/testutil"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newForm(ownerID uint, link string, questions ...string) *models.Form {
	return &models.Form{
		OwnerID:    ownerID,
		Title:      "Avis " + link,
		Questions:  datatypes.NewJSONSlice(questions),
		PublicLink: link,
	}
}

func TestFormRepositoryCreateAndFindByPublicLink(t *testing.T) {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateUser(t, db, "owner@example.com")
	repo := NewFormRepository(db)
	ctx := context.Background()

	form := newForm(owner.ID, "link-1", "Accueil ?", "Service ?")
	form.NoteLabel = "Note"
	form.ExternalLinks = datatypes.NewJSONSlice([]models.ExternalLink{{Label: "Google", URL: "https://g.co"}})
	if err := repo.Create(ctx, form); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if form.ID == 0 {
		t.Fatal("Create did not assign an id")
	}

	got, err := repo.FindByPublicLink(ctx, "link-1")
	if err != nil {
		t.Fatalf("FindByPublicLink: %v", err)
	}
	if got.ID != form.ID || len(got.Questions) != 2 || got.Questions[1] != "Service ?" {
		t.Fatalf("unexpected form: %+v", got)
	}
	if len(got.ExternalLinks) != 1 || got.ExternalLinks[0].URL != "https://g.co" {
		t.Fatalf("external links not round-tripped: %+v", got.ExternalLinks)
	}
}

func TestFormRepositoryCreateWithoutLinksStoresEmptyList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateUser(t, db, "owner@example.com")
	repo := NewFormRepository(db)

	if err := repo.Create(context.Background(), newForm(owner.ID, "no-links", "Q")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.FindByPublicLink(context.Background(), "no-links")
	if err != nil {
		t.Fatalf("FindByPublicLink: %v", err)
	}
	if got.ExternalLinks == nil || len(got.ExternalLinks) != 0 {
		t.Fatalf("expected an empty link list, got %#v", got.ExternalLinks)
	}
}

func TestFormRepositoryDuplicatePublicLink(t *testing.T) {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateUser(t, db, "owner@example.com")
	repo := NewFormRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, newForm(owner.ID, "same", "Q")); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	err := repo.Create(ctx, newForm(owner.ID, "same", "Q"))
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}
}

func TestFormRepositoryFindByPublicLinkNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewFormRepository(db)

	for _, link := range []string{"", "missing"} {
		if _, err := repo.FindByPublicLink(context.Background(), link); !errors.Is(err, ErrNotFound) {
			t.Errorf("link %q: expected ErrNotFound, got %v", link, err)
		}
	}
}

func TestFormRepositoryFindAllByOwnerNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateUser(t, db, "owner@example.com")
	other := testutil.CreateUser(t, db, "other@example.com")
	repo := NewFormRepository(db)
	ctx := context.Background()

	for _, link := range []string{"a", "b", "c"} {
		if err := repo.Create(ctx, newForm(owner.ID, link, "Q")); err != nil {
			t.Fatalf("Create %s: %v", link, err)
		}
	}
	if err := repo.Create(ctx, newForm(other.ID, "foreign", "Q")); err != nil {
		t.Fatalf("Create foreign: %v", err)
	}

	forms, err := repo.FindAllByOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("FindAllByOwner: %v", err)
	}
	if len(forms) != 3 {
		t.Fatalf("expected 3 forms, got %d", len(forms))
	}
	if forms[0].PublicLink != "c" || forms[2].PublicLink != "a" {
		t.Fatalf("expected newest first, got %s..%s", forms[0].PublicLink, forms[2].PublicLink)
	}
}

func TestFormRepositoryUpdateKeepsOwnerAndLink(t *testing.T) {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateUser(t, db, "owner@example.com")
	intruder := testutil.CreateUser(t, db, "intruder@example.com")
	repo := NewFormRepository(db)
	ctx := context.Background()

	form := newForm(owner.ID, "stable-link", "Old question")
	if err := repo.Create(ctx, form); err != nil {
		t.Fatalf("Create: %v", err)
	}

	fields := FormFields{
		Title:         "Nouveau titre",
		Questions:     []string{"Q1", "Q2"},
		NoteLabel:     "Note",
		ExternalLinks: []models.ExternalLink{{Label: "Yelp", URL: "https://yelp.com"}},
	}
	if err := repo.Update(ctx, form.ID, intruder.ID, fields); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update by another owner: expected ErrNotFound, got %v", err)
	}
	if err := repo.Update(ctx, form.ID, owner.ID, fields); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.FindByID(ctx, form.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Title != "Nouveau titre" || len(got.Questions) != 2 || got.NoteLabel != "Note" {
		t.Fatalf("fields not updated: %+v", got)
	}
	if got.OwnerID != owner.ID || got.PublicLink != "stable-link" {
		t.Fatalf("owner or public link changed: owner=%d link=%s", got.OwnerID, got.PublicLink)
	}
	if len(got.ExternalLinks) != 1 || got.ExternalLinks[0].Label != "Yelp" {
		t.Fatalf("links not updated: %+v", got.ExternalLinks)
	}
}

func TestFormRepositoryFindByIDNotFound(t *testing.T) {
	repo := NewFormRepository(testutil.SetupTestDB(t))
	if _, err := repo.FindByID(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
