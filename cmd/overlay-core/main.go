package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("overlay-core"),
		kong.Description("Overlay hotkey manager with Hyprland integration."),
		kong.UsageOnError(),
		kong.Vars{"version": version, "max_log_files": fmt.Sprint(defaultMaxLogFiles)},
	)
	defer cli.Close()

	if err := ctx.Run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cli.Close()
		os.Exit(1)
	}
}
