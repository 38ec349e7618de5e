package configs

import (
	"os"
	"strconv"
	"strings"
)

// AppConfig holds the HTTP-level settings of the application.
type AppConfig struct {
	Env          string
	Port         string
	BaseURL      string
	CookieSecure bool
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// LoadAppConfig reads the application settings from the environment.
func LoadAppConfig() AppConfig {
	port := GetEnvWithDefault("APP_PORT", "3000")
	return AppConfig{
		Env:          GetEnvWithDefault("APP_ENV", "development"),
		Port:         port,
		BaseURL:      strings.TrimRight(GetEnvWithDefault("APP_BASE_URL", "http://localhost:"+port), "/"),
		CookieSecure: GetEnvBool("SESSION_COOKIE_SECURE", false),
	}
}

// GetEnvWithDefault returns the value of key or fallback when it is unset or blank.
func GetEnvWithDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// GetEnvInt parses key as an integer, falling back on missing or invalid values.
func GetEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(GetEnvWithDefault(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

// GetEnvBool parses key as a boolean, falling back on missing or invalid values.
func GetEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(GetEnvWithDefault(key, ""))
	if err != nil {
		return fallback
	}
	return value
}
