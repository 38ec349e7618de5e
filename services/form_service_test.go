package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func sequenceLinks(links ...string) func() string {
	i := 0
	return func() string {
		link := links[i%len(links)]
		i++
		return link
	}
}

func validDraft() FormDraft {
	return FormDraft{Title: " Mon resto ", Questions: []string{"Accueil ?", " Plats ? "}, NoteLabel: "Note"}
}

func TestCreateFormPersistsTrimmedDraft(t *testing.T) {
	repo := newFakeFormRepo()
	svc := NewFormService(repo)
	svc.newPublicLink = sequenceLinks("link-1")

	form, err := svc.CreateForm(context.Background(), 7, validDraft())
	if err != nil {
		t.Fatalf("CreateForm: %v", err)
	}
	if form.OwnerID != 7 || form.PublicLink != "link-1" || form.Title != "Mon resto" {
		t.Fatalf("unexpected form %+v", form)
	}
	if form.Questions[1] != "Plats ?" {
		t.Fatalf("questions not trimmed: %v", form.Questions)
	}
	if form.ExternalLinks == nil {
		t.Fatal("external links must be an empty list, not nil")
	}
}

func TestCreateFormDefaultLinkIsUUID(t *testing.T) {
	repo := newFakeFormRepo()
	form, err := NewFormService(repo).CreateForm(context.Background(), 1, validDraft())
	if err != nil {
		t.Fatalf("CreateForm: %v", err)
	}
	if len(form.PublicLink) != 36 || strings.Count(form.PublicLink, "-") != 4 {
		t.Fatalf("public link %q does not look like a UUID", form.PublicLink)
	}
}

func TestCreateFormRetriesOnLinkCollision(t *testing.T) {
	repo := newFakeFormRepo()
	repo.createErrs = []error{gorm.ErrDuplicatedKey, nil}
	svc := NewFormService(repo)
	svc.newPublicLink = sequenceLinks("taken", "free")

	form, err := svc.CreateForm(context.Background(), 1, validDraft())
	if err != nil {
		t.Fatalf("CreateForm: %v", err)
	}
	if form.PublicLink != "free" || repo.createCalls != 2 {
		t.Fatalf("expected second link after one retry, got %q after %d calls", form.PublicLink, repo.createCalls)
	}
}

func TestCreateFormGivesUpAfterRepeatedCollisions(t *testing.T) {
	repo := newFakeFormRepo()
	repo.createErrs = []error{gorm.ErrDuplicatedKey, gorm.ErrDuplicatedKey, gorm.ErrDuplicatedKey}
	_, err := NewFormService(repo).CreateForm(context.Background(), 1, validDraft())
	if !errors.Is(err, ErrFrmLinkGenerationFailed) {
		t.Fatalf("expected ErrFrmLinkGenerationFailed, got %v", err)
	}
	if repo.createCalls != publicLinkAttempts {
		t.Fatalf("expected %d attempts, got %d", publicLinkAttempts, repo.createCalls)
	}
}

func TestCreateFormReportsStoreDetail(t *testing.T) {
	repo := newFakeFormRepo()
	repo.createErrs = []error{fmt.Errorf("insert: %w", &pgconn.PgError{
		Message: "insert or update on table \"forms\" violates foreign key constraint",
		Detail:  "Key (owner_id)=(1) is not present in table \"users\".",
	})}
	_, err := NewFormService(repo).CreateForm(context.Background(), 1, validDraft())
	if !errors.Is(err, ErrFormCreationFailed) {
		t.Fatalf("expected ErrFormCreationFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "violates foreign key constraint - Key (owner_id)=(1)") {
		t.Fatalf("message should carry the store detail, got %q", err.Error())
	}
}

func TestCreateFormValidationNeverReachesStore(t *testing.T) {
	repo := newFakeFormRepo()
	svc := NewFormService(repo)
	ctx := context.Background()

	drafts := []FormDraft{
		{Title: "", Questions: []string{"Q"}},
		{Title: "T", Questions: []string{""}},
		{Title: "T", Questions: []string{"1", "2", "3", "4", "5", "6"}},
	}
	for _, d := range drafts {
		if _, err := svc.CreateForm(ctx, 1, d); err == nil {
			t.Fatalf("draft %+v should be rejected", d)
		}
	}
	if _, err := svc.CreateForm(ctx, 0, validDraft()); !errors.Is(err, ErrFrmInvalidInput) {
		t.Fatalf("missing owner: expected ErrFrmInvalidInput, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("store called %d times for invalid drafts", repo.createCalls)
	}
}

func TestUpdateFormOnlyByOwner(t *testing.T) {
	repo := newFakeFormRepo()
	svc := NewFormService(repo)
	svc.newPublicLink = sequenceLinks("link-1")
	ctx := context.Background()

	form, err := svc.CreateForm(ctx, 1, validDraft())
	if err != nil {
		t.Fatalf("CreateForm: %v", err)
	}

	updated := FormDraft{Title: "Nouveau", Questions: []string{"Q"}}
	if err := svc.UpdateForm(ctx, 2, form.ID, updated); !errors.Is(err, ErrFormNotFound) {
		t.Fatalf("foreign owner: expected ErrFormNotFound, got %v", err)
	}
	if err := svc.UpdateForm(ctx, 1, form.ID, updated); err != nil {
		t.Fatalf("UpdateForm: %v", err)
	}

	got, err := svc.GetFormForOwner(ctx, 1, form.ID)
	if err != nil {
		t.Fatalf("GetFormForOwner: %v", err)
	}
	if got.Title != "Nouveau" || got.PublicLink != "link-1" || got.OwnerID != 1 {
		t.Fatalf("unexpected form after update %+v", got)
	}
	if _, err := svc.GetFormForOwner(ctx, 2, form.ID); !errors.Is(err, ErrFormNotFound) {
		t.Fatalf("foreign read: expected ErrFormNotFound, got %v", err)
	}
}

func TestUpdateFormWrapsStoreErrors(t *testing.T) {
	repo := newFakeFormRepo()
	repo.updateErr = errors.New("disk full")
	err := NewFormService(repo).UpdateForm(context.Background(), 1, 1, validDraft())
	if !errors.Is(err, ErrFormUpdateFailed) || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected wrapped ErrFormUpdateFailed, got %v", err)
	}
}

func TestGetFormsForOwner(t *testing.T) {
	repo := newFakeFormRepo()
	svc := NewFormService(repo)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := svc.CreateForm(ctx, 1, validDraft()); err != nil {
			t.Fatalf("CreateForm: %v", err)
		}
	}
	if _, err := svc.CreateForm(ctx, 2, validDraft()); err != nil {
		t.Fatalf("CreateForm: %v", err)
	}

	forms, err := svc.GetFormsForOwner(ctx, 1)
	if err != nil {
		t.Fatalf("GetFormsForOwner: %v", err)
	}
	if len(forms) != 2 || forms[0].ID <= forms[1].ID {
		t.Fatalf("expected the owner's two forms newest first, got %+v", forms)
	}
	if _, err := svc.GetFormsForOwner(ctx, 0); !errors.Is(err, ErrFrmInvalidInput) {
		t.Fatalf("expected ErrFrmInvalidInput, got %v", err)
	}
}
