package configsdatabase

import (
	"fmt"
	"time"

	"rateme.app/configs"
	"rateme.app/configs/configslog"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var db *gorm.DB

// DatabaseConfig describes how to reach the backing store.
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
	Path     string // sqlite only
	LogLevel logger.LogLevel
}

// LoadDatabaseConfig reads DB_* variables from the environment.
func LoadDatabaseConfig() DatabaseConfig {
	logLevel := logger.Warn
	if configs.GetEnvWithDefault("APP_ENV", "development") == "development" {
		logLevel = logger.Info
	}
	return DatabaseConfig{
		Driver:   configs.GetEnvWithDefault("DB_DRIVER", DriverPostgres),
		Host:     configs.GetEnvWithDefault("DB_HOST", "localhost"),
		Port:     configs.GetEnvInt("DB_PORT", 5432),
		User:     configs.GetEnvWithDefault("DB_USER", "postgres"),
		Password: configs.GetEnvWithDefault("DB_PASSWORD", ""),
		Name:     configs.GetEnvWithDefault("DB_NAME", "rateme"),
		SSLMode:  configs.GetEnvWithDefault("DB_SSLMODE", "disable"),
		TimeZone: configs.GetEnvWithDefault("DB_TIMEZONE", "UTC"),
		Path:     configs.GetEnvWithDefault("DB_PATH", "rateme.db"),
		LogLevel: logLevel,
	}
}

// Open opens a gorm connection for cfg without touching the global handle.
func Open(cfg DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode, cfg.TimeZone)
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(cfg.LogLevel),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == DriverSQLite {
		// a single connection keeps ":memory:" databases alive and avoids SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}
	return conn, nil
}

// InitDB opens the global connection; startup cannot continue without it.
func InitDB() {
	cfg := LoadDatabaseConfig()
	conn, err := Open(cfg)
	if err != nil {
		configslog.Log.Fatal("Database connection failed", zap.String("driver", cfg.Driver), zap.Error(err))
	}
	db = conn
	configslog.SLog.Infof("Database connection established (%s)", cfg.Driver)
}

// GetDB returns the global connection opened by InitDB.
func GetDB() *gorm.DB {
	if db == nil {
		configslog.Log.Fatal("Database is not initialized, call InitDB first")
	}
	return db
}

// CloseDB closes the global connection if one is open.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("Could not get sql.DB for closing", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Database connection could not be closed", zap.Error(err))
		return
	}
	configslog.SLog.Info("Database connection closed")
}
