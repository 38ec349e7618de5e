package models

import (
	"strconv"

	"gorm.io/datatypes"
)

const (
	MinNote = 1
	MaxNote = 5
)

// Response is one anonymous submission to a form. Questions holds the form's
// question texts as they were when the response was sent; rows written
// before that column existed hold [].
type Response struct {
	BaseModel
	FormID      uint                        `gorm:"index;not null" json:"form_id"`
	ClientEmail *string                     `gorm:"type:varchar(320)" json:"client_email"`
	Answers     datatypes.JSONSlice[string] `gorm:"not null" json:"answers"`
	Questions   datatypes.JSONSlice[string] `gorm:"not null;default:'[]'" json:"questions"`
	Note        *int                        `gorm:"type:integer" json:"note"`

	Form Form `gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// QuestionLabel names the question answered at idx. The text captured at
// submission wins; current is only consulted for responses without one.
func (r Response) QuestionLabel(idx int, current []string) string {
	if idx >= 0 && idx < len(r.Questions) && r.Questions[idx] != "" {
		return r.Questions[idx]
	}
	if len(r.Questions) == 0 && idx >= 0 && idx < len(current) {
		return current[idx]
	}
	return "Question " + strconv.Itoa(idx+1)
}
