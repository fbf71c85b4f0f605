package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port          string `toml:"port"`
	Environment   string `toml:"env"`
	ReadTimeout   int    `toml:"read_timeout"`
	WriteTimeout  int    `toml:"write_timeout"`
	TargetsDir    string `toml:"targets_dir"`
	LibraryDBPath string `toml:"library_db_path"`
	CanvasWidth   int    `toml:"canvas_width"`
	CanvasHeight  int    `toml:"canvas_height"`
	SessionTTL    int    `toml:"session_ttl"` // минуты без событий до закрытия сессии
}

func Defaults() *Config {
	return &Config{
		Port:          "3000",
		Environment:   "development",
		ReadTimeout:   10,
		WriteTimeout:  10,
		TargetsDir:    "targets",
		LibraryDBPath: "data/db/library.db",
		CanvasWidth:   640,
		CanvasHeight:  480,
		SessionTTL:    60,
	}
}

// Load загружает конфигурацию: значения по умолчанию, затем TOML-файл
// из EDITOR_CONFIG (если задан), затем переменные окружения.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("EDITOR_CONFIG"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadFile накладывает значения из TOML-файла. Отсутствующие ключи не меняются.
func (c *Config) LoadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("decode config %s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.Environment = getEnv("ENV", c.Environment)
	c.ReadTimeout = getEnvAsInt("READ_TIMEOUT", c.ReadTimeout)
	c.WriteTimeout = getEnvAsInt("WRITE_TIMEOUT", c.WriteTimeout)
	c.TargetsDir = getEnv("TARGETS_DIR", c.TargetsDir)
	c.LibraryDBPath = getEnv("LIBRARY_DB_PATH", c.LibraryDBPath)
	c.CanvasWidth = getEnvAsInt("CANVAS_WIDTH", c.CanvasWidth)
	c.CanvasHeight = getEnvAsInt("CANVAS_HEIGHT", c.CanvasHeight)
	c.SessionTTL = getEnvAsInt("SESSION_TTL", c.SessionTTL)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
