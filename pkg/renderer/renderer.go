package renderer

import (
	"fmt"
	"net/http"
	"time"

	"rateme.app/configs/configslog"
	"rateme.app/pkg/flashmessages"
	"rateme.app/pkg/navigation"
	"rateme.app/utils"
	"rateme.app/views"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

const (
	FlashSuccessKeyView = "Success"
	FlashErrorKeyView   = "Error"

	DefaultLayout = "layouts/main"
	AppName       = "RateMe"
)

// NewEngine returns the template engine reading the embedded views.
func NewEngine() *html.Engine {
	engine := html.NewFileSystem(http.FS(views.FS), ".html")
	engine.AddFuncMap(map[string]interface{}{
		"inc": func(i int) int { return i + 1 },
		"formatDate": func(t time.Time) string {
			return t.Local().Format("02/01/2006 15:04")
		},
		"answerAt": func(answers []string, idx int) string {
			if idx >= 0 && idx < len(answers) {
				return answers[idx]
			}
			return ""
		},
		"deref": func(p interface{}) interface{} {
			switch v := p.(type) {
			case *string:
				if v != nil {
					return *v
				}
			case *int:
				if v != nil {
					return *v
				}
			}
			return nil
		},
	})
	return engine
}

// SetFlashMessages copies pending flash messages into the view data.
func SetFlashMessages(data fiber.Map, flash flashmessages.FlashMessages) {
	if flash.Success != "" {
		data[FlashSuccessKeyView] = flash.Success
	}
	if flash.Error != "" {
		data[FlashErrorKeyView] = flash.Error
	}
}

// Render renders view inside layout with the shell data every page needs:
// the menu, the session and any pending flash messages.
func Render(c *fiber.Ctx, view, layout string, data fiber.Map, status ...int) error {
	if data == nil {
		data = fiber.Map{}
	}
	if layout == "" {
		layout = DefaultLayout
	}
	sc := utils.CurrentSession(c)
	data["AppName"] = AppName
	data["Session"] = sc
	data["CurrentPath"] = c.Path()
	data["Menu"] = navigation.MenuItems(sc.HasSession(), c.Path())

	if flash, err := flashmessages.GetFlashMessages(c); err == nil {
		if _, set := data[FlashSuccessKeyView]; set {
			flash.Success = ""
		}
		if _, set := data[FlashErrorKeyView]; set {
			flash.Error = ""
		}
		SetFlashMessages(data, flash)
	}
	data["PageTitle"] = AppName
	if title, ok := data["Title"]; ok {
		data["PageTitle"] = fmt.Sprintf("%v | %s", title, AppName)
	}

	code := fiber.StatusOK
	if len(status) > 0 {
		code = status[0]
	}
	if err := c.Status(code).Render(view, data, layout); err != nil {
		configslog.Log.Error("Template render failed", zap.String("view", view), zap.Error(err))
		return err
	}
	return nil
}
