package models

import "gorm.io/datatypes"

// MaxQuestions is the upper bound on questions per form.
const MaxQuestions = 5

// ExternalLink points respondents to a third-party review platform.
type ExternalLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// IsComplete reports whether both label and URL are filled in.
func (l ExternalLink) IsComplete() bool {
	return l.Label != "" && l.URL != ""
}

// Form is a review form owned by one user and reachable through its public link.
type Form struct {
	BaseModel
	OwnerID       uint                              `gorm:"index;not null" json:"owner_id"`
	Title         string                            `gorm:"type:varchar(255);not null" json:"title"`
	Questions     datatypes.JSONSlice[string]       `gorm:"not null" json:"questions"`
	NoteLabel     string                            `gorm:"type:varchar(255)" json:"note_label"`
	PublicLink    string                            `gorm:"type:varchar(36);uniqueIndex;not null" json:"public_link"`
	ExternalLinks datatypes.JSONSlice[ExternalLink] `gorm:"not null" json:"external_links"`

	Owner User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
}

// HasNote reports whether respondents are asked for a 1-5 rating.
func (f *Form) HasNote() bool {
	return f.NoteLabel != ""
}
