// Package config resolves runtime settings from defaults, an optional TOML
// file and ZENITH_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"

	DefaultDataDir = "data"
	ConfigFileName = "zenith.toml"
	sqliteFileName = "zenith.db"
	logFileName    = "zenith.log"
	envConfigFile  = "ZENITH_CONFIG"
	envPrefix      = "ZENITH_"
)

var ErrInvalidBackend = errors.New("config: invalid backend")

type Config struct {
	DataDir              string `toml:"data_dir"`
	Backend              string `toml:"backend"`
	SQLitePath           string `toml:"sqlite_path"`
	LogLevel             string `toml:"log_level"`
	RefreshSeconds       int    `toml:"refresh_seconds"`
	SchedulerBuffer      int    `toml:"scheduler_buffer"`
	StartReminders       bool   `toml:"start_reminders"`
	DesktopNotifications bool   `toml:"desktop_notifications"`
	WeeklyDays           int    `toml:"weekly_days"`
	HeatmapDays          int    `toml:"heatmap_days"`

	// Source is the TOML file that was applied, if any.
	Source string `toml:"-"`
}

func Default() Config {
	return Config{
		DataDir:         DefaultDataDir,
		Backend:         BackendJSON,
		LogLevel:        "info",
		RefreshSeconds:  60,
		SchedulerBuffer: 64,
		StartReminders:  true,
		WeeklyDays:      7,
		HeatmapDays:     35,
	}
}

// Load reads an optional .env file, then applies the config file and the
// environment on top of the defaults.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := Default()
	if dir := strings.TrimSpace(os.Getenv(envPrefix + "DATA_DIR")); dir != "" {
		cfg.DataDir = dir
	}
	path, explicit := configFilePath(cfg.DataDir)
	if err := cfg.applyFile(path, explicit); err != nil {
		return Config{}, err
	}
	cfg = FromEnv(cfg)
	return cfg.finalize()
}

func configFilePath(dataDir string) (string, bool) {
	if p := strings.TrimSpace(os.Getenv(envConfigFile)); p != "" {
		return p, true
	}
	return filepath.Join(dataDir, ConfigFileName), false
}

func (c *Config) applyFile(path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("config: %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	c.Source = path
	return nil
}

// FromEnv overrides base with any ZENITH_* variables that are set and
// valid. Unparsable or non-positive numbers are ignored.
func FromEnv(base Config) Config {
	cfg := base
	if v := getEnvString("DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := getEnvString("BACKEND"); v != "" {
		cfg.Backend = strings.ToLower(v)
	}
	if v := getEnvString("SQLITE_PATH"); v != "" {
		cfg.SQLitePath = v
	}
	if v := getEnvString("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v, ok := getEnvInt("REFRESH_SECONDS"); ok && v > 0 {
		cfg.RefreshSeconds = v
	}
	if v, ok := getEnvInt("SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvBool("START_REMINDERS"); ok {
		cfg.StartReminders = v
	}
	if v, ok := getEnvBool("DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("WEEKLY_DAYS"); ok && v > 0 {
		cfg.WeeklyDays = v
	}
	if v, ok := getEnvInt("HEATMAP_DAYS"); ok && v > 0 {
		cfg.HeatmapDays = v
	}
	return cfg
}

func (c Config) finalize() (Config, error) {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend == "" {
		c.Backend = BackendJSON
	}
	if c.Backend != BackendJSON && c.Backend != BackendSQLite {
		return Config{}, fmt.Errorf("%w: %q", ErrInvalidBackend, c.Backend)
	}
	if strings.TrimSpace(c.DataDir) == "" {
		c.DataDir = DefaultDataDir
	}
	if strings.TrimSpace(c.SQLitePath) == "" {
		c.SQLitePath = filepath.Join(c.DataDir, sqliteFileName)
	}
	def := Default()
	if c.RefreshSeconds <= 0 {
		c.RefreshSeconds = def.RefreshSeconds
	}
	if c.SchedulerBuffer <= 0 {
		c.SchedulerBuffer = def.SchedulerBuffer
	}
	if c.WeeklyDays <= 0 {
		c.WeeklyDays = def.WeeklyDays
	}
	if c.HeatmapDays <= 0 {
		c.HeatmapDays = def.HeatmapDays
	}
	return c, nil
}

// LogPath is where the terminal UI writes its log.
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, logFileName)
}

func getEnvString(name string) string {
	return strings.TrimSpace(os.Getenv(envPrefix + name))
}

func getEnvInt(name string) (int, bool) {
	raw := getEnvString(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.ToLower(getEnvString(name))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
