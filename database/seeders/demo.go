package seeders

import (
	"errors"
	"time"

	"rateme.app/configs"
	"rateme.app/configs/configslog"
	"rateme.app/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DemoUserEmail = "demo@rateme.app"
	DemoFormTitle = "Votre avis sur notre restaurant"
)

// SeedDemoAccount creates a confirmed demo owner with one sample form. It is
// safe to run repeatedly; the form's public link is generated on first run.
func SeedDemoAccount(db *gorm.DB) error {
	configslog.SLog.Info("Seeding demo account...")

	var user models.User
	err := db.Where("email = ?", DemoUserEmail).First(&user).Error
	switch {
	case err == nil:
		configslog.SLog.Debugf("Demo user '%s' already exists, skipping.", DemoUserEmail)
	case errors.Is(err, gorm.ErrRecordNotFound):
		password := configs.GetEnvWithDefault("SEED_DEMO_PASSWORD", "Demo123!")
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if hashErr != nil {
			return hashErr
		}
		confirmedAt := time.Now().UTC()
		user = models.User{
			Name:         "Démo",
			Email:        DemoUserEmail,
			PasswordHash: string(hash),
			ConfirmedAt:  &confirmedAt,
		}
		if err := db.Create(&user).Error; err != nil {
			configslog.Log.Error("Demo user could not be created", zap.Error(err))
			return err
		}
		configslog.SLog.Infof("Demo user created (ID: %d).", user.ID)
	default:
		configslog.Log.Error("Demo user lookup failed", zap.Error(err))
		return err
	}

	var count int64
	if err := db.Model(&models.Form{}).Where("owner_id = ? AND title = ?", user.ID, DemoFormTitle).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		configslog.SLog.Debug("Demo form already exists, skipping.")
		return nil
	}

	form := models.Form{
		OwnerID:    user.ID,
		Title:      DemoFormTitle,
		Questions:  datatypes.NewJSONSlice([]string{"Qu'avez-vous pensé de l'accueil ?", "Que pourrions-nous améliorer ?"}),
		NoteLabel:  "Note globale",
		PublicLink: uuid.NewString(),
		ExternalLinks: datatypes.NewJSONSlice([]models.ExternalLink{
			{Label: "Google", URL: "https://www.google.com/maps"},
		}),
	}
	if err := db.Omit("Owner").Create(&form).Error; err != nil {
		configslog.Log.Error("Demo form could not be created", zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Demo form created (ID: %d, link: %s).", form.ID, form.PublicLink)
	return nil
}
