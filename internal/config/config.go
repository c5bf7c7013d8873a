package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/skyschedule/internal/skyq"
)

// Config holds the resolved skyschedule settings.
type Config struct {
	Address      string
	Limit        int
	RolloverHour int
	Location     *time.Location
	Timeout      time.Duration
	CountMaxAge  time.Duration
	PollInterval time.Duration
	Format       string
	LogLevel     string
	LogDir       string
}

const (
	defaultConfigPath   = "~/.config/skyschedule/config.toml"
	defaultLogDir       = "~/.local/state/skyschedule"
	defaultLimit        = 50
	defaultTimeout      = 5 * time.Second
	defaultCountMaxAge  = 30 * time.Second
	defaultPollInterval = 60 * time.Second
	defaultFormat       = "lines"
	defaultLogLevel     = "info"
)

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		Limit:        defaultLimit,
		Location:     time.Local,
		Timeout:      defaultTimeout,
		CountMaxAge:  defaultCountMaxAge,
		PollInterval: defaultPollInterval,
		Format:       defaultFormat,
		LogLevel:     defaultLogLevel,
		LogDir:       mustExpand(defaultLogDir),
	}
}

// Load locates and parses the config file, falling back to defaults when it
// is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Address      string `toml:"address"`
		Limit        *int   `toml:"limit"`
		RolloverHour *int   `toml:"rollover_hour"`
		Timezone     string `toml:"timezone"`
		Timeout      string `toml:"timeout"`
		CountMaxAge  string `toml:"count_max_age"`
		PollInterval string `toml:"poll_interval"`
		Format       string `toml:"format"`
		LogLevel     string `toml:"log_level"`
		LogDir       string `toml:"log_dir"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Address = strings.TrimSpace(raw.Address)

	if raw.Limit != nil {
		if *raw.Limit <= 0 {
			return Config{}, fmt.Errorf("%w: limit must be positive, got %d", skyq.ErrInvalidLimit, *raw.Limit)
		}
		cfg.Limit = *raw.Limit
	}
	if raw.RolloverHour != nil {
		boundary := skyq.DayBoundary{RolloverHour: *raw.RolloverHour}
		if err := boundary.Validate(); err != nil {
			return Config{}, fmt.Errorf("rollover_hour: %w", err)
		}
		cfg.RolloverHour = *raw.RolloverHour
	}
	if tz := strings.TrimSpace(raw.Timezone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return Config{}, fmt.Errorf("timezone: %w", err)
		}
		cfg.Location = loc
	}

	durations := []struct {
		key   string
		value string
		dest  *time.Duration
	}{
		{"timeout", raw.Timeout, &cfg.Timeout},
		{"poll_interval", raw.PollInterval, &cfg.PollInterval},
	}
	for _, d := range durations {
		if err := parseDuration(d.key, d.value, d.dest); err != nil {
			return Config{}, err
		}
	}
	if err := parseCountMaxAge(raw.CountMaxAge, &cfg.CountMaxAge); err != nil {
		return Config{}, err
	}

	if format := strings.TrimSpace(raw.Format); format != "" {
		cfg.Format = format
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = level
	}
	if logDir := strings.TrimSpace(raw.LogDir); logDir != "" {
		cfg.LogDir = mustExpand(logDir)
	}

	return cfg, nil
}

// LogPath returns the watch-mode log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/skyschedule.log")
	}
	return filepath.Join(c.LogDir, "skyschedule.log")
}

func parseDuration(key, value string, dest *time.Duration) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return fmt.Errorf("%s must be positive, got %s", key, trimmed)
	}
	*dest = d
	return nil
}

// parseCountMaxAge accepts zero or a negative duration as "probe before every
// fetch", stored as -1 so it is not mistaken for the client default.
func parseCountMaxAge(value string, dest *time.Duration) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return fmt.Errorf("count_max_age: %w", err)
	}
	if d <= 0 {
		d = -1
	}
	*dest = d
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
