package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Game    GameConfig    `toml:"game"`
	Files   FilesConfig   `toml:"files"`
	Scores  ScoresConfig  `toml:"scores"`
	Audio   AudioConfig   `toml:"audio"`
	Logging LoggingConfig `toml:"logging"`
}

type GameConfig struct {
	TickRate     time.Duration `toml:"tick_rate"`
	ScreenWidth  float64       `toml:"screen_width"`
	ScreenHeight float64       `toml:"screen_height"`
	StartLevel   string        `toml:"start_level"`
	Seed         string        `toml:"seed"` // empty = random per run
	Autopilot    bool          `toml:"autopilot"`
	Cull         bool          `toml:"cull_projectiles"`
	InputQueue   int           `toml:"input_queue"`
}

type FilesConfig struct {
	Levels           string `toml:"levels"`
	Actors           string `toml:"actors"`
	DifficultyScript string `toml:"difficulty_script"`
	Watch            bool   `toml:"watch"` // reload tables and script between levels
}

type ScoresConfig struct {
	Driver          string        `toml:"driver"` // "sqlite", "postgres" or "none"
	DSN             string        `toml:"dsn"`
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
	TopN            int           `toml:"top_n"`
	Player          string        `toml:"player"`
}

type AudioConfig struct {
	Enabled    bool    `toml:"enabled"`
	SampleRate int     `toml:"sample_rate"`
	Volume     float64 `toml:"volume"` // log2 gain, 0 = unchanged
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty = stderr
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration, used when no file is given.
func Default() *Config {
	return defaults()
}

func (c *Config) validate() error {
	if c.Game.TickRate <= 0 {
		return fmt.Errorf("game.tick_rate must be positive")
	}
	if c.Game.ScreenWidth <= 0 || c.Game.ScreenHeight <= 0 {
		return fmt.Errorf("game.screen_width and screen_height must be positive")
	}
	switch c.Scores.Driver {
	case "sqlite", "postgres", "none", "":
	default:
		return fmt.Errorf("scores.driver %q not supported", c.Scores.Driver)
	}
	if c.Scores.TopN <= 0 {
		return fmt.Errorf("scores.top_n must be positive")
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Game: GameConfig{
			TickRate:     50 * time.Millisecond,
			ScreenWidth:  1300,
			ScreenHeight: 750,
			StartLevel:   "level_one",
			Cull:         true,
			InputQueue:   64,
		},
		Files: FilesConfig{
			Levels:           "data/levels.yaml",
			Actors:           "data/actors.yaml",
			DifficultyScript: "scripts/difficulty.lua",
		},
		Scores: ScoresConfig{
			Driver:          "sqlite",
			DSN:             "skyraid.db",
			MaxOpenConns:    4,
			MaxIdleConns:    1,
			ConnMaxLifetime: 30 * time.Minute,
			TopN:            5,
			Player:          "pilot",
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "skyraid.log",
		},
	}
}
