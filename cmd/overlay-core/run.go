package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/TanaroSch/overlay-core/internal/app"
	"github.com/TanaroSch/overlay-core/internal/instance"
)

// RunCmd starts the tray application, or relays to the running instance.
type RunCmd struct {
	ToggleOverlay bool   `help:"Toggle the overlay (relayed to the running instance if there is one)" name:"toggle-overlay"`
	Action        string `help:"Trigger a bindable action by name, e.g. toggle_overlay_visibility (relayed like --toggle-overlay)" placeholder:"NAME"`
}

func (r *RunCmd) args() []string {
	var args []string
	if r.ToggleOverlay {
		args = append(args, app.ToggleOverlayArg)
	}
	if r.Action != "" {
		args = append(args, app.ActionArgPrefix+r.Action)
	}
	return args
}

// Run executes the application.
func (r *RunCmd) Run(cli *CLI) error {
	if _, err := app.ActionsFromArgs(r.args()); err != nil {
		return err
	}

	gate, err := instance.Acquire(app.Name)
	if errors.Is(err, instance.ErrAlreadyRunning) {
		slog.Info("Another instance is running, relaying arguments", "args", r.args())
		if err := instance.Send(gate.Endpoint, r.args()); err != nil {
			return fmt.Errorf("relay to running instance: %w", err)
		}
		return nil
	}
	if err != nil {
		return err
	}
	defer gate.Release()

	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}

	slog.Info("overlay-core starting", "version", version, "config", cfg.GetConfigPath())
	application, err := app.New(app.Options{Version: version, Config: cfg})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	relay := instance.NewServer(gate.Endpoint, application.HandleArgs)
	return application.Run(ctx, relay, r.args())
}
