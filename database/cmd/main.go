package main

import (
	"flag"

	"rateme.app/configs/configsdatabase"
	"rateme.app/configs/configslog"
	"rateme.app/database"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	migrateFlag := flag.Bool("migrate", false, "Run the database migrations")
	seedFlag := flag.Bool("seed", false, "Run the database seeders")
	flag.Parse()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	configslog.SLog.Info("Running database initialization...")
	if err := database.Initialize(configsdatabase.GetDB(), *migrateFlag, *seedFlag); err != nil {
		configslog.Log.Fatal("Database initialization failed", zap.Error(err))
	}
	configslog.SLog.Info("Database initialization finished.")
}
