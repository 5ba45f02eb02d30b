package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port      string `json:"port" env:"CMS_PORT"`
	DBAdapter string `json:"dbAdapter" env:"CMS_DB_ADAPTER"` // "mongodb" (default) | "postgres"
	// DATABASE_URI читается только из окружения: без дефолта и без проверки.
	DatabaseURI string `json:"-" env:"DATABASE_URI"`
	DBSchema    string `json:"dbSchema" env:"CMS_DB_SCHEMA"` // только для postgres
	AutoMigrate bool   `json:"autoMigrate" env:"CMS_AUTO_MIGRATE"`

	// Корень, относительно которого лежат staticDir upload-коллекций
	FilesRoot string `json:"filesRoot" env:"CMS_FILES_ROOT"`

	LogLevel string `json:"logLevel" env:"CMS_LOG_LEVEL"`

	// Для клиентских команд (seed)
	ServerURL string `json:"serverUrl" env:"CMS_SERVER_URL"`
	APIKey    string `json:"-" env:"CMS_API_KEY"`
}

func def() Config {
	return Config{
		Port:        "3000",
		DBAdapter:   "mongodb",
		DatabaseURI: "",
		DBSchema:    "public",
		AutoMigrate: false,
		FilesRoot:   ".",
		LogLevel:    "info",
		ServerURL:   "http://localhost:3000",
	}
}

func loadJSON(path string, c *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, c); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// Load: дефолты → JSON (если файл есть) → ENV. Флаги накладывает вызывающий (cmd).
func Load(jsonPath string) (Config, error) {
	cfg := def()

	if jsonPath != "" {
		if st, err := os.Stat(jsonPath); err == nil && !st.IsDir() {
			if err := loadJSON(jsonPath, &cfg); err != nil {
				return cfg, err
			}
		}
	}

	// незаданные переменные не трогают уже выставленные значения
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
