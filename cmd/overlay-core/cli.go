package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/TanaroSch/overlay-core/internal/config"
	"github.com/TanaroSch/overlay-core/internal/hotkey"
	"github.com/TanaroSch/overlay-core/internal/logging"
)

const defaultMaxLogFiles = logging.DefaultMaxLogFiles

// CLI represents the command-line interface structure.
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"${max_log_files}"`
	Config      string           `help:"Path to config.yaml" type:"path" env:"OVERLAY_CORE_CONFIG"`

	Run      RunCmd      `cmd:"" help:"Start the tray application (default)" default:"withargs"`
	Platform PlatformCmd `cmd:"" help:"Print the platform capability flags as JSON"`
	Bindings BindingsCmd `cmd:"" help:"Print the default hotkey bindings as JSON"`
	Hyprland HyprlandCmd `cmd:"" help:"Hyprland integration"`

	out       io.Writer `kong:"-"`
	logCloser io.Closer `kong:"-"`
}

// AfterApply initializes logging once flags are parsed.
func (c *CLI) AfterApply() error {
	closer, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}
	c.logCloser = closer

	// Relayed invocations started by the compositor inherit the same log.
	if c.Debug || c.DebugFile != "" {
		os.Setenv(logging.EnvDebug, "1")
	}
	return nil
}

// Close releases the debug log file. Safe to call more than once.
func (c *CLI) Close() {
	if c.logCloser == nil {
		return
	}
	if err := c.logCloser.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: closing log file: %v\n", err)
	}
	c.logCloser = nil
}

func (c *CLI) stdout() io.Writer {
	if c.out != nil {
		return c.out
	}
	return os.Stdout
}

// loadConfig loads --config, or the default config path.
func (c *CLI) loadConfig() (*config.Config, error) {
	path := c.Config
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded configuration", "path", cfg.GetConfigPath())
	return cfg, nil
}

func (c *CLI) printJSON(v any) error {
	enc := json.NewEncoder(c.stdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// BindingsCmd prints the built-in bindings.
type BindingsCmd struct{}

// Run prints the default bindings. They are what every process starts with.
func (b *BindingsCmd) Run(cli *CLI) error {
	return cli.printJSON(hotkey.DefaultBindings())
}
