package models

import "time"

// User is an account able to build forms and read their responses.
type User struct {
	BaseModel
	Name              string `gorm:"type:varchar(150);not null"`
	Email             string `gorm:"type:varchar(320);uniqueIndex;not null"`
	PasswordHash      string `gorm:"type:varchar(255);not null" json:"-"`
	ConfirmationToken string `gorm:"type:varchar(36);index" json:"-"`
	ConfirmedAt       *time.Time
}

// IsConfirmed reports whether the email confirmation link was followed.
func (u *User) IsConfirmed() bool {
	return u.ConfirmedAt != nil
}
