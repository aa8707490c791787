package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bkazemi/gohilo/internal/round"
	"github.com/bkazemi/gohilo/internal/store"
)

type Timings struct {
	SuspenseMs int `json:"suspense_ms"`
	RevealMs   int `json:"reveal_ms"`
	PauseMs    int `json:"pause_ms"`
}

type Store struct {
	// Mode is one of memory, sqlite or postgres.
	Mode string `json:"mode"`
	Path string `json:"path"`
	DSN  string `json:"dsn"`
}

type GameConfig struct {
	Timings Timings `json:"timings"`
	Seed    int64   `json:"seed"`
	Store   Store   `json:"store"`
	LogFile string  `json:"log_file"`
	WebAddr string  `json:"web_addr"`
}

func Default() *GameConfig {
	t := round.DefaultTimings()

	return &GameConfig{
		Timings: Timings{
			SuspenseMs: int(t.Suspense / time.Millisecond),
			RevealMs:   int(t.Reveal / time.Millisecond),
			PauseMs:    int(t.Pause / time.Millisecond),
		},
		Store:   Store{Mode: store.ModeSQLite},
		WebAddr: "127.0.0.1:8080",
	}
}

// Load reads the JSON config at path over the defaults, applies the HILO_*
// environment overrides, then each of overrides in order, and validates the
// result. An empty path skips the file.
func Load(path string, overrides ...func(*GameConfig)) (*GameConfig, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}

	for _, override := range overrides {
		override(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func read(path string) (*GameConfig, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read game config: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
		}
	}

	cfg.ApplyEnv(os.Getenv)

	return cfg, nil
}

// ApplyEnv overrides fields from HILO_STORE_MODE, HILO_DATABASE_PATH,
// HILO_DATABASE_DSN and HILO_SEED when they are set.
func (c *GameConfig) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv("HILO_STORE_MODE")); v != "" {
		c.Store.Mode = v
	}
	if v := strings.TrimSpace(getenv("HILO_DATABASE_PATH")); v != "" {
		c.Store.Path = v
	}
	if v := strings.TrimSpace(getenv("HILO_DATABASE_DSN")); v != "" {
		c.Store.DSN = v
	} else if v := strings.TrimSpace(getenv("DATABASE_URL")); v != "" && c.Store.DSN == "" {
		c.Store.DSN = v
	}
	if v := strings.TrimSpace(getenv("HILO_SEED")); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = seed
		}
	}
}

func (c *GameConfig) Validate() error {
	if c.Timings.SuspenseMs < 0 || c.Timings.RevealMs < 0 || c.Timings.PauseMs < 0 {
		return fmt.Errorf("timings must be >= 0 (got %d/%d/%d ms)",
			c.Timings.SuspenseMs, c.Timings.RevealMs, c.Timings.PauseMs)
	}

	switch mode := store.NormalizeMode(c.Store.Mode); mode {
	case store.ModeMemory, store.ModeSQLite:
	case store.ModePostgres:
		if strings.TrimSpace(c.Store.DSN) == "" {
			return fmt.Errorf("store mode %s needs a dsn", mode)
		}
	default:
		return fmt.Errorf("invalid store mode %q", c.Store.Mode)
	}

	return nil
}

// Round returns the state machine settings.
func (c *GameConfig) Round() round.Config {
	return round.Config{
		Timings: round.Timings{
			Suspense: time.Duration(c.Timings.SuspenseMs) * time.Millisecond,
			Reveal:   time.Duration(c.Timings.RevealMs) * time.Millisecond,
			Pause:    time.Duration(c.Timings.PauseMs) * time.Millisecond,
		},
		Seed: c.Seed,
	}
}
