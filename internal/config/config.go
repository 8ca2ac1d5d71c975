package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the tuioctl service configuration.
type Config struct {
	Port                 int      `toml:"port"`
	ProfileFiltering     bool     `toml:"profile_filtering"`
	LateFrameTolerance   int32    `toml:"late_frame_tolerance"`
	UnsequencedRefreshMS int      `toml:"unsequenced_refresh_ms"`
	PathHistory          int      `toml:"path_history"`
	AdminAddr            string   `toml:"admin_addr"`
	CorsOrigins          []string `toml:"cors_origins"`
	StreamBuffer         int      `toml:"stream_buffer"`
	BindAttempts         int      `toml:"bind_attempts"`
	BindRetryMS          int      `toml:"bind_retry_ms"`
}

func Default() Config {
	return Config{
		Port:                 3333,
		LateFrameTolerance:   100,
		UnsequencedRefreshMS: 100,
		PathHistory:          128,
		StreamBuffer:         64,
		BindAttempts:         1,
		BindRetryMS:          250,
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := loadToml(path, &cfg); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func Validate(cfg Config) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("config port out of range: %d", cfg.Port)
	}
	if cfg.LateFrameTolerance <= 0 {
		return fmt.Errorf("config late_frame_tolerance must be positive")
	}
	if cfg.UnsequencedRefreshMS <= 0 {
		return fmt.Errorf("config unsequenced_refresh_ms must be positive")
	}
	if cfg.PathHistory <= 0 {
		return fmt.Errorf("config path_history must be positive")
	}
	if cfg.StreamBuffer <= 0 {
		return fmt.Errorf("config stream_buffer must be positive")
	}
	if cfg.BindAttempts < 1 {
		return fmt.Errorf("config bind_attempts must be at least 1")
	}
	if cfg.BindRetryMS < 0 {
		return fmt.Errorf("config bind_retry_ms must not be negative")
	}
	if addr := strings.TrimSpace(cfg.AdminAddr); addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return fmt.Errorf("config admin_addr invalid: %w", err)
		}
	}
	for i, origin := range cfg.CorsOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("cors_origins[%d] is empty", i)
		}
	}
	return nil
}

// UnsequencedRefresh returns the refresh interval as a duration.
func (c Config) UnsequencedRefresh() time.Duration {
	return time.Duration(c.UnsequencedRefreshMS) * time.Millisecond
}

// AdminEnabled reports whether the HTTP admin surface should start.
func (c Config) AdminEnabled() bool {
	return strings.TrimSpace(c.AdminAddr) != ""
}
