package migrations

import (
	"rateme.app/configs/configslog"
	"rateme.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateResponsesTable must run after MigrateFormsTable: responses reference forms.
func MigrateResponsesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating responses table...")
	if err := db.AutoMigrate(&models.Response{}); err != nil {
		configslog.Log.Error("Failed to migrate responses table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Responses table migrated successfully")
	return nil
}
