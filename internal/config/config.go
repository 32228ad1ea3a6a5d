package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/kapu/boardwidget/internal/board"
)

type AppConfig struct {
	ListenAddr string
	// LiveAddr enables the websocket live preview listener when set.
	LiveAddr string

	AssetBasePath string

	RedisURL    string
	DatabaseURL string

	Theme    string
	ThemeDir string

	SettingsScope string

	// BoardDefaults seeds the settings store at startup when any
	// BOARD_* variable is present.
	BoardDefaults board.DisplayOptions
	SeedDefaults  bool
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		ListenAddr:    ":8080",
		AssetBasePath: "/sprites",
		Theme:         "classic",
		SettingsScope: "default",
		BoardDefaults: board.DefaultOptions(),
	}

	if v := strings.TrimSpace(os.Getenv("LISTEN_ADDR")); v != "" {
		cfg.ListenAddr = v
	}
	cfg.LiveAddr = strings.TrimSpace(os.Getenv("LIVE_ADDR"))

	if v := strings.TrimSpace(os.Getenv("ASSET_BASE_PATH")); v != "" {
		cfg.AssetBasePath = v
	}

	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	if v := strings.TrimSpace(os.Getenv("THEME")); v != "" {
		cfg.Theme = v
	}
	cfg.ThemeDir = strings.TrimSpace(os.Getenv("THEME_DIR"))

	if v := strings.TrimSpace(os.Getenv("SETTINGS_SCOPE")); v != "" {
		cfg.SettingsScope = v
	}

	if v := strings.TrimSpace(os.Getenv("BOARD_FLIP")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.BoardDefaults.Flip = b
			cfg.SeedDefaults = true
		}
	}
	if v := strings.TrimSpace(os.Getenv("BOARD_SQUARE_SIZE")); v != "" {
		cfg.BoardDefaults.SquareSize = board.ValidateSquareSizeString(v)
		cfg.SeedDefaults = true
	}
	if v := strings.TrimSpace(os.Getenv("BOARD_SHOW_COORDINATES")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.BoardDefaults.ShowCoordinates = b
			cfg.SeedDefaults = true
		}
	}

	if !strings.HasPrefix(cfg.AssetBasePath, "/") &&
		!strings.HasPrefix(cfg.AssetBasePath, "http://") &&
		!strings.HasPrefix(cfg.AssetBasePath, "https://") {
		return nil, errors.New("ASSET_BASE_PATH must be an absolute path or URL")
	}

	return cfg, nil
}
