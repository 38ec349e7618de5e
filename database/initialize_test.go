package database

import (
	"testing"

	"rateme.app/configs/configsdatabase"
	"rateme.app/database/seeders"
	"rateme.app/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := configsdatabase.Open(configsdatabase.DatabaseConfig{
		Driver:   configsdatabase.DriverSQLite,
		Path:     ":memory:",
		LogLevel: logger.Silent,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestInitializeMigratesAndSeedsIdempotently(t *testing.T) {
	db := openMemoryDB(t)

	for run := 1; run <= 2; run++ {
		if err := Initialize(db, true, true); err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
	}

	var user models.User
	if err := db.Where("email = ?", seeders.DemoUserEmail).First(&user).Error; err != nil {
		t.Fatalf("load demo user: %v", err)
	}
	var users, forms int64
	db.Model(&models.User{}).Where("email = ?", seeders.DemoUserEmail).Count(&users)
	db.Model(&models.Form{}).Where("owner_id = ?", user.ID).Count(&forms)
	if users != 1 || forms != 1 {
		t.Fatalf("expected one demo user and form, got %d users / %d forms", users, forms)
	}

	var form models.Form
	if err := db.Where("owner_id = ? AND title = ?", user.ID, seeders.DemoFormTitle).First(&form).Error; err != nil {
		t.Fatalf("load demo form: %v", err)
	}
	if len(form.Questions) == 0 || !form.HasNote() {
		t.Fatalf("demo form incomplete: %+v", form)
	}
	if _, err := uuid.Parse(form.PublicLink); err != nil {
		t.Fatalf("demo public link should be a generated uuid, got %q", form.PublicLink)
	}
}

func TestInitializeWithoutFlagsDoesNothing(t *testing.T) {
	db := openMemoryDB(t)
	if err := Initialize(db, false, false); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if db.Migrator().HasTable(&models.User{}) {
		t.Fatal("no table should be created without the migrate flag")
	}
}
