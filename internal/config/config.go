// Package config resolves runtime settings from MELONPATCH_* environment
// variables, with an optional .env file loaded first.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	SaveFile         string
	WindowWidth      int
	WindowHeight     int
	WorldSeed        int64
	AutosaveInterval time.Duration
	LogLevel         string
	LogFormat        string
}

func defaults() Config {
	return Config{
		SaveFile:         "melonpatch-save.json",
		WindowWidth:      1280,
		WindowHeight:     720,
		WorldSeed:        0, // 0 means derive from the clock at startup
		AutosaveInterval: 30 * time.Second,
		LogLevel:         "info",
		LogFormat:        "text",
	}
}

// Load reads .env if present (never an error when absent) and applies
// environment overrides on top of defaults. Malformed values fall back
// to the default rather than failing startup.
func Load() Config {
	_ = godotenv.Load()

	cfg := defaults()
	if v := os.Getenv("MELONPATCH_SAVE_FILE"); v != "" {
		cfg.SaveFile = v
	}
	if v, ok := envInt("MELONPATCH_WINDOW_WIDTH"); ok {
		cfg.WindowWidth = v
	}
	if v, ok := envInt("MELONPATCH_WINDOW_HEIGHT"); ok {
		cfg.WindowHeight = v
	}
	if v := os.Getenv("MELONPATCH_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.WorldSeed = n
		}
	}
	if v, ok := envInt("MELONPATCH_AUTOSAVE_SECONDS"); ok && v > 0 {
		cfg.AutosaveInterval = time.Duration(v) * time.Second
	}
	if v := os.Getenv("MELONPATCH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("MELONPATCH_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	return cfg
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
