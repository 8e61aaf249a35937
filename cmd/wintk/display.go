package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/1broseidon/wintk/internal/display"
)

func runDisplay(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  wintk display modes [--display :0]")
		fmt.Fprintln(os.Stderr, "  wintk display monitors [--display :0]")
		fmt.Fprintln(os.Stderr, "  wintk display set [--display :0] <WIDTHxHEIGHT>")
		return 2
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	disp := fs.String("display", "", "X display (default: $DISPLAY)")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}

	var target display.Mode
	switch args[0] {
	case "modes", "monitors":
	case "set":
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "set requires <WIDTHxHEIGHT>")
			return 2
		}
		w, h, err := parseSize(fs.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		target = display.Mode{Width: w, Height: h}
	default:
		fmt.Fprintf(os.Stderr, "Unknown display subcommand: %s\n", args[0])
		return 2
	}

	x, err := display.NewX11(*disp)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer x.Close()

	switch args[0] {
	case "modes":
		modes, err := x.Modes()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		cur, _ := x.Current()
		for _, m := range modes {
			marker := " "
			if m == cur {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, m)
		}

	case "monitors":
		monitors, err := x.Monitors()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		for _, m := range monitors {
			fmt.Printf("%d %-10s %s %s\n", m.ID, m.Name, m.Bounds, m.Mode)
		}
		if wa, ok := x.WorkArea(); ok {
			fmt.Printf("workarea %s\n", wa)
		}

	case "set":
		if err := x.SetMode(target); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("mode: %s\n", target)
	}
	return 0
}

// parseSize parses "WIDTHxHEIGHT".
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q (want WIDTHxHEIGHT)", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("invalid width in %q", s)
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("invalid height in %q", s)
	}
	return w, h, nil
}
