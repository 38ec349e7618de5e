// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"rateme.app/configs/configsdatabase"
	"rateme.app/database"
	"rateme.app/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB returns a migrated in-memory SQLite database closed at the end of the test.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := configsdatabase.Open(configsdatabase.DatabaseConfig{
		Driver:   configsdatabase.DriverSQLite,
		Path:     ":memory:",
		LogLevel: logger.Silent,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.RunMigrationsInOrder(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a confirmed user with the given email.
func CreateUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	now := time.Now().UTC()
	user := &models.User{
		Name:         "Owner " + email,
		Email:        email,
		PasswordHash: "x",
		ConfirmedAt:  &now,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// CreateForm inserts a form owned by ownerID with the given questions.
func CreateForm(t *testing.T, db *gorm.DB, ownerID uint, publicLink string, questions ...string) *models.Form {
	t.Helper()
	form := &models.Form{
		OwnerID:       ownerID,
		Title:         fmt.Sprintf("Form %s", publicLink),
		Questions:     datatypes.NewJSONSlice(questions),
		PublicLink:    publicLink,
		ExternalLinks: datatypes.NewJSONSlice([]models.ExternalLink{}),
	}
	if err := db.Omit("Owner").Create(form).Error; err != nil {
		t.Fatalf("create form: %v", err)
	}
	return form
}
