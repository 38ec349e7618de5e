package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rateme.app/configs"
	"rateme.app/configs/configsdatabase"
	"rateme.app/configs/configslog"
	"rateme.app/database"
	"rateme.app/pkg/renderer"
	"rateme.app/routes"
	"rateme.app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load() // .env is optional
	configslog.InitLogger()
	defer configslog.SyncLogger()

	cfg := configs.LoadAppConfig()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()
	db := configsdatabase.GetDB()

	if configs.GetEnvBool("DB_AUTO_MIGRATE", false) {
		if err := database.RunMigrationsInOrder(db); err != nil {
			configslog.Log.Fatal("Auto migration failed", zap.Error(err))
		}
	}

	events := services.NewSessionEvents()
	svc := routes.NewServices(db, services.NewMailerFromEnv(), events, cfg.BaseURL)
	unsubscribe := svc.Auth.SubscribeSessionChanges(auditSessionEvent)
	defer unsubscribe()

	app := fiber.New(fiber.Config{
		AppName:      renderer.AppName,
		Views:        renderer.NewEngine(),
		ErrorHandler: routes.ErrorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})
	routes.SetupRoutes(app, configs.SetupSession(cfg), svc, cfg.BaseURL)

	go func() {
		addr := ":" + cfg.Port
		configslog.SLog.Infof("RateMe listening on %s (%s)", addr, cfg.Env)
		if err := app.Listen(addr); err != nil {
			configslog.Log.Error("Server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	configslog.SLog.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		configslog.Log.Error("Graceful shutdown failed", zap.Error(err))
	}
}

func auditSessionEvent(evt services.SessionEvent) {
	configslog.Log.Info("Session change",
		zap.String("event", string(evt.Type)),
		zap.Uint("userID", evt.UserID),
		zap.Time("at", evt.At),
	)
}
