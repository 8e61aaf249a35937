package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/wintk/internal/display"
	"github.com/1broseidon/wintk/internal/dump"
	"github.com/1broseidon/wintk/internal/tiling"
)

func runLayout(args []string) int {
	if len(args) == 0 || args[0] != "dump" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  wintk layout dump [--path PATH] [--preset NAME] [--windows N] [--mode MODE] [--gap N] [--size WxH | --display :0]")
		if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
			return 2
		}
		fmt.Fprintf(os.Stderr, "Unknown layout subcommand: %s\n", args[0])
		return 2
	}

	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/wintk/config.yaml)")
	preset := fs.String("preset", "", "Builtin preset to apply over the config file")
	windows := fs.Int("windows", 4, "Number of windows to tile")
	mode := fs.String("mode", string(tiling.ModeGrid), "Layout mode: grid, vertical, horizontal, master_stack")
	gap := fs.Int("gap", 0, "Gap between tiles")
	size := fs.String("size", "640x480", "Screen size when no display is used")
	disp := fs.String("display", "", "Take the screen size from this X display")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := usePreset(res.Config, *preset); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	opts := dump.Options{Windows: *windows, Mode: tiling.Mode(*mode), Gap: *gap}
	if *disp != "" {
		x, err := display.NewX11(*disp)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer x.Close()
		opts.Display = x
	} else {
		opts.Width, opts.Height, err = parseSize(*size)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
	}

	report, err := dump.Build(res.Config, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := dump.Write(os.Stdout, report); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
