package flashmessages

import (
	"rateme.app/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	FlashSuccessKey = "flash_success"
	FlashErrorKey   = "flash_error"
)

// FlashMessages are one-shot messages carried across a redirect.
type FlashMessages struct {
	Success string
	Error   string
}

// SetFlashMessage stores message under key until the next GetFlashMessages.
func SetFlashMessage(c *fiber.Ctx, key, message string) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return err
	}
	sess.Set(key, message)
	return sess.Save()
}

// GetFlashMessages reads and clears the pending flash messages.
func GetFlashMessages(c *fiber.Ctx) (FlashMessages, error) {
	var flash FlashMessages
	sess, err := utils.SessionStart(c)
	if err != nil {
		return flash, err
	}
	success, _ := sess.Get(FlashSuccessKey).(string)
	errorMsg, _ := sess.Get(FlashErrorKey).(string)
	if success == "" && errorMsg == "" {
		return flash, nil
	}
	flash.Success = success
	flash.Error = errorMsg
	sess.Delete(FlashSuccessKey)
	sess.Delete(FlashErrorKey)
	return flash, sess.Save()
}
