package migrations

import (
	"rateme.app/configs/configslog"
	"rateme.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateFormsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating forms table...")
	if err := db.AutoMigrate(&models.Form{}); err != nil {
		configslog.Log.Error("Failed to migrate forms table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Forms table migrated successfully")
	return nil
}
