package repositories

import (
	"context"
	"testing"

	"rateme.app/models"
	"rateme.app/testutil"

	"gorm.io/datatypes"
)

func TestResponseRepositoryCreateAndListNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateUser(t, db, "owner@example.com")
	form := testutil.CreateForm(t, db, owner.ID, "resp-link", "Q1", "Q2")
	other := testutil.CreateForm(t, db, owner.ID, "other-link", "Q1")
	repo := NewResponseRepository(db)
	ctx := context.Background()

	email := "client@example.com"
	note := 4
	first := &models.Response{FormID: form.ID, Answers: datatypes.NewJSONSlice([]string{"a1", "a2"}), ClientEmail: &email, Note: &note}
	second := &models.Response{FormID: form.ID, Answers: datatypes.NewJSONSlice([]string{"b1", "b2"})}
	foreign := &models.Response{FormID: other.ID, Answers: datatypes.NewJSONSlice([]string{"x"})}
	for _, r := range []*models.Response{first, second, foreign} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	responses, err := repo.FindAllByFormID(ctx, form.ID)
	if err != nil {
		t.Fatalf("FindAllByFormID: %v", err)
	}
	if len(responses) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(responses))
	}
	if responses[0].ID != second.ID {
		t.Fatalf("expected newest response first, got id %d", responses[0].ID)
	}
	if responses[0].ClientEmail != nil || responses[0].Note != nil {
		t.Fatalf("expected null email and note, got %+v", responses[0])
	}
	last := responses[1]
	if last.ClientEmail == nil || *last.ClientEmail != email || last.Note == nil || *last.Note != 4 {
		t.Fatalf("email or note not stored: %+v", last)
	}
	if last.Answers[0] != "a1" || last.Answers[1] != "a2" {
		t.Fatalf("answers out of order: %v", last.Answers)
	}
}

func TestResponseRepositoryEmptyList(t *testing.T) {
	repo := NewResponseRepository(testutil.SetupTestDB(t))
	responses, err := repo.FindAllByFormID(context.Background(), 7)
	if err != nil {
		t.Fatalf("FindAllByFormID: %v", err)
	}
	if len(responses) != 0 {
		t.Fatalf("expected no responses, got %d", len(responses))
	}
}
