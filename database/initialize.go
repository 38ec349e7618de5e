package database

import (
	"errors"

	"rateme.app/configs/configslog"
	"rateme.app/database/migrations"
	"rateme.app/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize runs the migrations and/or the seeders in one transaction.
func Initialize(db *gorm.DB, migrate bool, seed bool) error {
	if !migrate && !seed {
		configslog.SLog.Info("No migrate or seed flag given, nothing to do.")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		configslog.SLog.Info("Database initialization starting...")

		if migrate {
			if err := RunMigrationsInOrder(tx); err != nil {
				configslog.Log.Error("Migration failed", zap.Error(err))
				return err
			}
		} else {
			configslog.SLog.Info("Migrate flag not set, skipping migrations.")
		}

		if seed {
			if err := CheckAndRunSeeders(tx); err != nil {
				configslog.Log.Error("Seeding failed", zap.Error(err))
				return err
			}
		} else {
			configslog.SLog.Info("Seed flag not set, skipping seeders.")
		}
		return nil
	})
}

// RunMigrationsInOrder migrates the tables in foreign-key order.
func RunMigrationsInOrder(db *gorm.DB) error {
	steps := []struct {
		name string
		run  func(*gorm.DB) error
	}{
		{"users", migrations.MigrateUsersTable},
		{"forms", migrations.MigrateFormsTable},
		{"responses", migrations.MigrateResponsesTable},
	}
	for _, step := range steps {
		configslog.SLog.Infof(" -> Migrating %s...", step.name)
		if err := step.run(db); err != nil {
			return errors.Join(errors.New("migration "+step.name+" failed"), err)
		}
	}
	configslog.SLog.Info("Migrations completed.")
	return nil
}

func CheckAndRunSeeders(db *gorm.DB) error {
	configslog.SLog.Info("Running seeders...")
	if err := seeders.SeedDemoAccount(db); err != nil {
		return err
	}
	configslog.SLog.Info("Seeders completed.")
	return nil
}
