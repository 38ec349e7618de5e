package models

import (
	"testing"

	"gorm.io/datatypes"
)

func TestResponseQuestionLabel(t *testing.T) {
	current := []string{"Prix ?"}

	captured := Response{
		Answers:   datatypes.NewJSONSlice([]string{"a", "b"}),
		Questions: datatypes.NewJSONSlice([]string{"Accueil ?", "Plats ?"}),
	}
	if got := captured.QuestionLabel(0, current); got != "Accueil ?" {
		t.Errorf("expected captured text, got %q", got)
	}
	if got := captured.QuestionLabel(1, current); got != "Plats ?" {
		t.Errorf("expected captured text, got %q", got)
	}

	legacy := Response{Answers: datatypes.NewJSONSlice([]string{"a", "b"})}
	if got := legacy.QuestionLabel(0, current); got != "Prix ?" {
		t.Errorf("expected current question for a response without captured texts, got %q", got)
	}
	if got := legacy.QuestionLabel(1, current); got != "Question 2" {
		t.Errorf("expected neutral label past the current questions, got %q", got)
	}
}
