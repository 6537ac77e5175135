package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

const (
	appDirName     = "overlay-core"
	configFileName = "config.yaml"

	maxConfigFileBytes = 1 << 20
)

// Discovery controls how long the overlay window is searched for in the
// Hyprland client list.
type Discovery struct {
	Attempts int           `yaml:"attempts"`
	Interval time.Duration `yaml:"interval"`
}

// Config holds the application settings. Hotkey bindings are deliberately
// absent: they reset to their defaults on every start.
type Config struct {
	UseNotifications  bool          `yaml:"use_notifications"`
	WMCommand         string        `yaml:"wm_command"`
	ToggleCommand     string        `yaml:"toggle_command,omitempty"`
	WindowMarker      string        `yaml:"window_marker"`
	Discovery         Discovery     `yaml:"discovery"`
	HyprlandConfigDir string        `yaml:"hyprland_config_dir,omitempty"`
	CommandTimeout    time.Duration `yaml:"command_timeout"`

	// Non-YAML fields (runtime state)
	configPath string
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() Config {
	return Config{
		UseNotifications: true,
		WMCommand:        "hyprctl",
		WindowMarker:     "overlay-core",
		Discovery: Discovery{
			Attempts: 20,
			Interval: 100 * time.Millisecond,
		},
		CommandTimeout: 5 * time.Second,
	}
}

// GetConfigPath returns the path the configuration was loaded from.
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// ResolvedToggleCommand returns the exec prefix written into compositor
// binds: the configured command, or the absolute path of this executable.
func (c *Config) ResolvedToggleCommand() string {
	if strings.TrimSpace(c.ToggleCommand) != "" {
		return strings.TrimSpace(c.ToggleCommand)
	}
	exe, err := os.Executable()
	if err != nil {
		slog.Warn("Could not resolve executable path, using program name", "error", err)
		return appDirName
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return exe
}

// DefaultPath returns $XDG_CONFIG_HOME/overlay-core/config.yaml, falling
// back to the OS user config directory.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("resolve config directory: %w", err)
		}
		base = dir
	}
	return filepath.Join(base, appDirName, configFileName), nil
}

// Load reads the configuration at configPath, creating it with defaults when
// it does not exist. Keys missing from the file keep their default values.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return nil, errors.New("config path required")
	}

	data, err := readLimitedFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		slog.Info("Config file not found, creating default", "path", configPath)
		if createErr := CreateDefaultConfig(configPath); createErr != nil {
			return nil, fmt.Errorf("config file not found and failed to create default '%s': %w", configPath, createErr)
		}
		data, err = readLimitedFile(configPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", configPath, err)
	}
	cfg.applyDefaults()
	cfg.configPath = configPath
	return &cfg, nil
}

// applyDefaults replaces out-of-range values with defaults and warns.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if strings.TrimSpace(c.WMCommand) == "" {
		slog.Warn("Config: wm_command is empty, using default", "default", def.WMCommand)
		c.WMCommand = def.WMCommand
	}
	if strings.TrimSpace(c.WindowMarker) == "" {
		slog.Warn("Config: window_marker is empty, using default", "default", def.WindowMarker)
		c.WindowMarker = def.WindowMarker
	}
	if c.Discovery.Attempts < 1 {
		slog.Warn("Config: discovery.attempts must be at least 1, using default", "value", c.Discovery.Attempts)
		c.Discovery.Attempts = def.Discovery.Attempts
	}
	if c.Discovery.Interval <= 0 {
		slog.Warn("Config: discovery.interval must be positive, using default", "value", c.Discovery.Interval)
		c.Discovery.Interval = def.Discovery.Interval
	}
	if c.CommandTimeout <= 0 {
		slog.Warn("Config: command_timeout must be positive, using default", "value", c.CommandTimeout)
		c.CommandTimeout = def.CommandTimeout
	}
}

// CreateDefaultConfig writes the default configuration to configPath.
func CreateDefaultConfig(configPath string) error {
	def := DefaultConfig()
	return writeConfig(configPath, &def)
}

// writeConfig writes via a temp file and rename so readers and the file
// watcher never observe a partial file.
func writeConfig(path string, cfg *Config) (err error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".config.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close config: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	slog.Debug("Config saved", "path", path)
	return nil
}

func readLimitedFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxConfigFileBytes {
		return nil, fmt.Errorf("config file exceeds %d bytes", maxConfigFileBytes)
	}
	return os.ReadFile(path)
}
